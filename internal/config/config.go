package config

import (
	"fmt"
	"os"
	"time"

	"catalogscrape/lib/configutil"
)

const fetchAPIKeyEnv = "CATALOG_FETCH_API_KEY"

// Database selects between a local WAL-mode sqlite file and a remote
// libsql replica; exactly one of File or (URL, AuthToken) is meaningful.
type Database struct {
	File      string `json:"file"`
	URL       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// Catalog names the catalog's base URL, a company path glob, and the
// partners directory path. The tag/batch/jobs URL patterns the lexer and
// extractors recognize are fixed in code, not configured here.
type Catalog struct {
	BaseURL          string `json:"base_url"`
	CompanyPathGlob  string `json:"company_path_glob"`
	PartnersPath     string `json:"partners_path"`
}

// Config is the full catalog.json5 shape, merged with any
// catalog.local.json5 override via dario.cat/mergo.
type Config struct {
	Database              Database `json:"database"`
	MaxConcurrent          int      `json:"max_concurrent"`
	HTTPTimeoutSeconds     int      `json:"http_timeout_seconds"`
	PartnerMatchThreshold  float64  `json:"partner_match_threshold"`
	FetchServiceBaseURL    string   `json:"fetch_service_base_url"`
	Catalog                Catalog  `json:"catalog"`

	// FetchAPIKey is never read from the file; Load populates it from
	// the environment so it never round-trips through catalog.json5.
	FetchAPIKey string `json:"-"`
}

func defaults() Config {
	return Config{
		MaxConcurrent:       10,
		HTTPTimeoutSeconds:  30,
		PartnerMatchThreshold: 0.92,
		FetchServiceBaseURL: "http://localhost:8787",
		Catalog: Catalog{
			BaseURL:      "https://www.ycombinator.com",
			PartnersPath: "/people",
		},
		Database: Database{File: "catalog.db"},
	}
}

// Load reads path (and path's .local sibling, if present), applies
// defaults for anything unset, and requires CATALOG_FETCH_API_KEY to be
// present in the environment. A missing config file is not an error —
// defaults alone are a valid configuration.
func Load(path string) (Config, error) {
	merged, err := loadMerged(path)
	if err != nil {
		return Config{}, err
	}

	merged.FetchAPIKey = os.Getenv(fetchAPIKeyEnv)
	if merged.FetchAPIKey == "" {
		return Config{}, fmt.Errorf("%s is not set", fetchAPIKeyEnv)
	}

	return merged, nil
}

// LoadReadOnly is Load without the fetch-service secret requirement, for
// commands (overview, stats) that never reach the network.
func LoadReadOnly(path string) (Config, error) {
	return loadMerged(path)
}

func loadMerged(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if os.IsNotExist(err) {
		cfg = Config{}
	}

	merged := defaults()
	if cfg.Database.File != "" || cfg.Database.URL != "" {
		merged.Database = cfg.Database
	}
	if cfg.MaxConcurrent > 0 {
		merged.MaxConcurrent = cfg.MaxConcurrent
	}
	if cfg.HTTPTimeoutSeconds > 0 {
		merged.HTTPTimeoutSeconds = cfg.HTTPTimeoutSeconds
	}
	if cfg.PartnerMatchThreshold > 0 {
		merged.PartnerMatchThreshold = cfg.PartnerMatchThreshold
	}
	if cfg.Catalog.BaseURL != "" {
		merged.Catalog.BaseURL = cfg.Catalog.BaseURL
	}
	if cfg.Catalog.CompanyPathGlob != "" {
		merged.Catalog.CompanyPathGlob = cfg.Catalog.CompanyPathGlob
	}
	if cfg.Catalog.PartnersPath != "" {
		merged.Catalog.PartnersPath = cfg.Catalog.PartnersPath
	}
	if cfg.FetchServiceBaseURL != "" {
		merged.FetchServiceBaseURL = cfg.FetchServiceBaseURL
	}

	return merged, nil
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
