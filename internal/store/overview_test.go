package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seedCompany(t *testing.T, s *Store, url, slug string, row CompanyRow) {
	t.Helper()
	enqueueAndFetch(t, s, url, slug, "# "+slug)
	row.Slug = slug
	row.SourceURL = url
	require.NoError(t, s.WriteRecords(url, PageRecords{Company: &row}))
}

func TestFetchOverviewFiltersByStatusAndBatch(t *testing.T) {
	s := openTestStore(t)
	seedCompany(t, s, "https://acme.com/companies/acme", "acme", CompanyRow{Name: "Acme", Status: "Active", BatchSeason: "Summer", BatchYear: 2021})
	seedCompany(t, s, "https://acme.com/companies/beta", "beta", CompanyRow{Name: "Beta", Status: "Acquired", BatchSeason: "Winter", BatchYear: 2022})

	rows, err := s.FetchOverview("Active", "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "acme", rows[0].Slug)

	rows, err = s.FetchOverview("", "Winter", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "beta", rows[0].Slug)
}

func TestFetchOverviewOrdersByBatchYearDescending(t *testing.T) {
	s := openTestStore(t)
	seedCompany(t, s, "https://acme.com/companies/old", "old", CompanyRow{Name: "Old Co", BatchYear: 2018})
	seedCompany(t, s, "https://acme.com/companies/new", "new", CompanyRow{Name: "New Co", BatchYear: 2024})

	rows, err := s.FetchOverview("", "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "new", rows[0].Slug)
	require.Equal(t, "old", rows[1].Slug)
}

func TestFetchOverviewIncludesJobCount(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", PageRecords{
		Company: &CompanyRow{Slug: "acme", Name: "Acme", SourceURL: "https://acme.com/companies/acme"},
		Jobs: []JobRow{
			{URL: "/companies/acme/jobs/1", Title: "Backend Engineer"},
			{URL: "/companies/acme/jobs/2", Title: "Frontend Engineer"},
		},
	}))

	rows, err := s.FetchOverview("", "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 2, rows[0].JobCount)
}

func TestFetchStatsCountsByState(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Enqueue(map[string]string{
		"https://acme.com/companies/a": "a",
		"https://acme.com/companies/b": "b",
	})
	require.NoError(t, err)
	require.NoError(t, s.MarkFetched("https://acme.com/companies/a", "# A", 200, 10))

	stats, err := s.FetchStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 1, stats.Fetched)
	require.Equal(t, 0, stats.Companies)
}
