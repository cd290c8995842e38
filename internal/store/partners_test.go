package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSavePartnersUpsertsBySlug(t *testing.T) {
	s := openTestStore(t)

	n, err := s.SavePartners([]PartnerRow{
		{Slug: "daltonc", URL: "https://ycombinator.com/people/daltonc", Name: "Dalton Caldwell", Title: "Group Partner"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = s.SavePartners([]PartnerRow{
		{Slug: "daltonc", URL: "https://ycombinator.com/people/daltonc", Name: "Dalton Caldwell", Title: "Managing Partner"},
	})
	require.NoError(t, err)

	partners, err := s.FetchPartners()
	require.NoError(t, err)
	require.Len(t, partners, 1)
	require.Equal(t, "Managing Partner", partners[0].Title)
}

func TestSaveCompanyPartnersIsAppendOnly(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", PageRecords{
		Company: &CompanyRow{Slug: "acme", Name: "Acme Corp", Partner: "Dalton Caldwell", SourceURL: "https://acme.com/companies/acme"},
	}))
	_, err := s.SavePartners([]PartnerRow{{Slug: "daltonc", URL: "https://ycombinator.com/people/daltonc", Name: "Dalton Caldwell"}})
	require.NoError(t, err)

	n, err := s.SaveCompanyPartners([]CompanyPartnerRow{{CompanySlug: "acme", PartnerSlug: "daltonc", MatchMethod: "name"}})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = s.SaveCompanyPartners([]CompanyPartnerRow{{CompanySlug: "acme", PartnerSlug: "daltonc", MatchMethod: "name"}})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestFetchUnmatchedPartnersOnlyReturnsCompaniesWithoutAMatch(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme")
	require.NoError(t, s.WriteRecords("https://acme.com/companies/acme", PageRecords{
		Company: &CompanyRow{Slug: "acme", Name: "Acme Corp", Partner: "Dalton Caldwell", SourceURL: "https://acme.com/companies/acme"},
	}))
	enqueueAndFetch(t, s, "https://acme.com/companies/beta", "beta", "# Beta")
	require.NoError(t, s.WriteRecords("https://acme.com/companies/beta", PageRecords{
		Company: &CompanyRow{Slug: "beta", Name: "Beta Corp", SourceURL: "https://acme.com/companies/beta"},
	}))

	unmatched, err := s.FetchUnmatchedPartners()
	require.NoError(t, err)
	require.Len(t, unmatched, 1)
	require.Equal(t, "acme", unmatched[0][0])
	require.Equal(t, "Dalton Caldwell", unmatched[0][1])

	_, err = s.SavePartners([]PartnerRow{{Slug: "daltonc", URL: "https://ycombinator.com/people/daltonc", Name: "Dalton Caldwell"}})
	require.NoError(t, err)
	_, err = s.SaveCompanyPartners([]CompanyPartnerRow{{CompanySlug: "acme", PartnerSlug: "daltonc", MatchMethod: "name"}})
	require.NoError(t, err)

	unmatched, err = s.FetchUnmatchedPartners()
	require.NoError(t, err)
	require.Len(t, unmatched, 0)
}

func TestFetchScrapedMarkdownReturnsEveryFetchedPage(t *testing.T) {
	s := openTestStore(t)
	enqueueAndFetch(t, s, "https://acme.com/companies/acme", "acme", "# Acme markdown")

	md, err := s.FetchScrapedMarkdown()
	require.NoError(t, err)
	require.Equal(t, "# Acme markdown", md["acme"])
}
