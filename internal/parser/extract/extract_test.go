package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

func TestExtractAssemblesAllRowKinds(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionHeader,
			Blocks: []parser.Block{
				{Kind: parser.BlockText, Text: "Acme Corp"},
				{Kind: parser.BlockText, Text: "We build widgets"},
			},
		},
		{
			Kind: parser.SectionFounders,
			Blocks: []parser.Block{
				{Kind: parser.BlockPerson, Name: "Jane Doe", Title: "CEO"},
			},
		},
		{
			Kind: parser.SectionNews,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Acme raises Series A", URL: "https://techcrunch.com/acme"},
				{Kind: parser.BlockDateLine, ISODate: "Jan 05, 2024"},
			},
		},
		{
			Kind: parser.SectionJobs,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Backend Engineer", URL: "/companies/acme/jobs/123"},
			},
		},
	}

	records := Extract("acme", "https://www.ycombinator.com/companies/acme", sections)

	require.NotNil(t, records.Company)
	require.Equal(t, "Acme Corp", records.Company.Name)
	require.Len(t, records.Founders, 1)
	require.Len(t, records.News, 1)
	require.Len(t, records.Jobs, 1)
	require.Len(t, records.Links, 2)
	require.Len(t, records.Sections, len(sections))
}

func TestExtractSectionRowsCarryOrdinalAndKind(t *testing.T) {
	sections := []parser.Section{
		{Kind: parser.SectionHeader, Blocks: []parser.Block{{Kind: parser.BlockText, Text: "Acme Corp"}}},
		{Kind: parser.SectionDescription, Blocks: []parser.Block{{Kind: parser.BlockText, Text: "We build widgets"}}},
	}

	records := Extract("acme", "https://www.ycombinator.com/companies/acme", sections)

	require.Len(t, records.Sections, 2)
	require.Equal(t, string(parser.SectionHeader), records.Sections[0].SectionKind)
	require.Equal(t, 0, records.Sections[0].Ord)
	require.Equal(t, string(parser.SectionDescription), records.Sections[1].SectionKind)
	require.Equal(t, 1, records.Sections[1].Ord)
}

func TestExtractFoundersAndJobsMatchExpectedRowsExactly(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionFounders,
			Blocks: []parser.Block{
				{Kind: parser.BlockPerson, Name: "Jane Doe", Title: "CEO"},
			},
		},
		{
			Kind: parser.SectionJobs,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Backend Engineer", URL: "/companies/acme/jobs/123"},
			},
		},
	}

	records := Extract("acme", "https://www.ycombinator.com/companies/acme", sections)

	wantFounders := []store.FounderRow{{Slug: "acme", Name: "Jane Doe", Title: "CEO", IsActive: true}}
	if diff := cmp.Diff(wantFounders, records.Founders); diff != "" {
		t.Errorf("founders mismatch (-want +got):\n%s", diff)
	}

	wantJobs := []store.JobRow{{Slug: "acme", URL: "/companies/acme/jobs/123", Title: "Backend Engineer"}}
	if diff := cmp.Diff(wantJobs, records.Jobs); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}
}
