package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func enqueueAndFetch(t *testing.T, s *Store, url, slug, markdown string) {
	t.Helper()
	_, err := s.Enqueue(map[string]string{url: slug})
	require.NoError(t, err)
	require.NoError(t, s.MarkFetched(url, markdown, 200, 10))
}

func TestWriteRecordsWithoutCompanyIsSchemaViolation(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")

	err := s.WriteRecords("https://acme.com/companies/acme", PageRecords{})
	require.Error(t, err)
	var violation *ErrSchemaViolation
	require.ErrorAs(t, err, &violation)

	pages, err := s.selectByState(StateFailed, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)
}

func TestWriteRecordsUpsertsCompanyAndAdvancesState(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")

	rec := PageRecords{Company: &CompanyRow{Slug: "acme", Name: "Acme Corp", SourceURL: "https://acme.com/companies/acme"}}
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", rec))

	pages, err := s.selectByState(StateParsed, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	var name string
	require.NoError(t, s.DB().QueryRow("SELECT name FROM companies WHERE slug = 'acme'").Scan(&name))
	require.Equal(t, "Acme Corp", name)
}

func TestWriteRecordsReplacesChildTablesOnReparse(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")

	first := PageRecords{
		Company:  &CompanyRow{Slug: "acme", Name: "Acme Corp", SourceURL: "https://acme.com/companies/acme"},
		Founders: []FounderRow{{Name: "Jane Doe", IsActive: true}},
	}
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", first))

	second := PageRecords{
		Company:  &CompanyRow{Slug: "acme", Name: "Acme Corp", SourceURL: "https://acme.com/companies/acme"},
		Founders: []FounderRow{{Name: "John Smith", IsActive: true}},
	}
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", second))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM founders WHERE slug = 'acme'").Scan(&count))
	require.Equal(t, 1, count)

	var name string
	require.NoError(t, s.DB().QueryRow("SELECT name FROM founders WHERE slug = 'acme'").Scan(&name))
	require.Equal(t, "John Smith", name)
}

func TestWriteRecordsResolvesFounderIDOnLinks(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")

	rec := PageRecords{
		Company:  &CompanyRow{Slug: "acme", Name: "Acme Corp", SourceURL: "https://acme.com/companies/acme"},
		Founders: []FounderRow{{Name: "Jane Doe", IsActive: true}},
		Links: []LinkRow{
			{URL: "https://linkedin.com/in/janedoe", Domain: "linkedin.com", Classification: "social", FounderName: "Jane Doe"},
		},
	}
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", rec))

	var founderID *int64
	require.NoError(t, s.DB().QueryRow(
		"SELECT founder_id FROM company_links WHERE slug = 'acme'").Scan(&founderID))
	require.NotNil(t, founderID)
}

func TestWriteRecordsRewritesSectionsByURL(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")

	sections := []SectionRow{{URL: "https://acme.com/companies/acme", Slug: "acme", SectionKind: "header", Ord: 0, JSONBlob: "[]"}}
	rec := PageRecords{
		Company:  &CompanyRow{Slug: "acme", Name: "Acme Corp", SourceURL: "https://acme.com/companies/acme"},
		Sections: sections,
	}
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", rec))
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", rec))

	var count int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*) FROM company_sections WHERE url = 'https://acme.com/companies/acme'").Scan(&count))
	require.Equal(t, 1, count)
}
