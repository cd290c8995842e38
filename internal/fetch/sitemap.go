package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

type sitemapURLSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// DiscoverSitemapURLs fetches sitemapURL (a sitemap or sitemap index) and
// returns every <loc> it names, recursing one level into any nested
// sitemap index. There is no ecosystem sitemap-XML library in the
// dependency set this project draws from, so this uses encoding/xml
// directly rather than invent a dependency for a single small parse.
func DiscoverSitemapURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	http := resty.New()
	return discoverSitemapURLs(ctx, http, sitemapURL, true)
}

func discoverSitemapURLs(ctx context.Context, http *resty.Client, sitemapURL string, allowRecurse bool) ([]string, error) {
	res, err := http.R().SetContext(ctx).Get(sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap %s: %w", sitemapURL, err)
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("fetch sitemap %s: status %d", sitemapURL, res.StatusCode())
	}

	var parsed sitemapURLSet
	if err := xml.Unmarshal(res.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("parse sitemap %s: %w", sitemapURL, err)
	}

	var urls []string
	for _, u := range parsed.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}

	if allowRecurse {
		for _, sm := range parsed.Sitemaps {
			loc := strings.TrimSpace(sm.Loc)
			if loc == "" {
				continue
			}
			nested, err := discoverSitemapURLs(ctx, http, loc, false)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
	}

	return urls, nil
}
