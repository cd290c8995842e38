package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverSitemapURLsReadsFlatSitemap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/companies/acme</loc></url>
  <url><loc>https://example.com/companies/beta</loc></url>
</urlset>`))
	}))
	defer srv.Close()

	urls, err := DiscoverSitemapURLs(context.Background(), srv.URL)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"https://example.com/companies/acme", "https://example.com/companies/beta"}, urls)
}

func TestDiscoverSitemapURLsRecursesOneLevelIntoIndex(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/nested.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/companies/acme</loc></url>
</urlset>`))
	})
	mux.HandleFunc("/sitemap-index.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>` + srv.URL + `/nested.xml</loc></sitemap>
</sitemapindex>`))
	})

	urls, err := DiscoverSitemapURLs(context.Background(), srv.URL+"/sitemap-index.xml")
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/companies/acme"}, urls)
}

func TestDiscoverSitemapURLsErrorsOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := DiscoverSitemapURLs(context.Background(), srv.URL)
	require.Error(t, err)
}
