package commands

import (
	"catalogscrape/internal/config"
	"catalogscrape/internal/fetch"
	"catalogscrape/internal/pipeline"
	"catalogscrape/internal/store"
	"catalogscrape/internal/telemetry"
	"catalogscrape/lib/util/serviceutil"
)

func openStore(cfg config.Config) (*store.Store, error) {
	if cfg.Database.URL != "" {
		return store.OpenRemote(cfg.Database.URL, cfg.Database.AuthToken)
	}
	path := dbPath
	if path == "" {
		path = cfg.Database.File
	}
	return store.Open(path)
}

// requirePipeline loads config, requires the fetch-service secret (exit 2
// if absent per the spec's documented environment contract), opens the
// store, and wires a fetch client and pipeline ready for scrape/process/run.
func requirePipeline() (pipeline.Pipeline, *store.Store, config.Config) {
	cfg, err := config.Load(configPath)
	if err != nil {
		serviceutil.FatalCode("failed to load config", err, 2)
	}

	st, err := openStore(cfg)
	if err != nil {
		serviceutil.Fatal("failed to open store", err)
	}

	tel := telemetry.NewSlogAPI()
	client := fetch.NewClient(tel, cfg.HTTPTimeout(), cfg.FetchServiceBaseURL, cfg.FetchAPIKey, nil, nil)
	p := pipeline.New(st, client, tel, cfg.MaxConcurrent, cfg.Catalog.PartnersPath, cfg.PartnerMatchThreshold)

	return p, st, cfg
}

func requireStore() (*store.Store, config.Config) {
	cfg, err := config.LoadReadOnly(configPath)
	if err != nil {
		serviceutil.Fatal("failed to load config", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		serviceutil.Fatal("failed to open store", err)
	}
	return st, cfg
}

func exitCode(anyFailures bool) int {
	if strict && anyFailures {
		return 1
	}
	return 0
}
