package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catalogscrape/internal/parser"
)

func TestLinksClassifiesSocialAndMedia(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Twitter", URL: "https://twitter.com/acme"},
				{Kind: parser.BlockLink, LinkText: "Demo", URL: "https://youtube.com/watch?v=1"},
				{Kind: parser.BlockLink, LinkText: "Blog", URL: "https://acme.com/blog"},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 3)
	require.Equal(t, "social", rows[0].Classification)
	require.Equal(t, "twitter.com", rows[0].Domain)
	require.Equal(t, "media", rows[1].Classification)
	require.Equal(t, "other", rows[2].Classification)
}

func TestLinksClassifiesCatalogInternal(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Related", URL: "/companies/other-startup"},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 1)
	require.Equal(t, "catalog-internal", rows[0].Classification)
}

func TestLinksIgnoresYCombinatorURLsEntirely(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionFooterMeta,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "YC", URL: "https://www.ycombinator.com/blog"},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 0)
}

func TestLinksCarriesFounderNameFromPersonBlock(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionFounders,
			Blocks: []parser.Block{
				{
					Kind: parser.BlockPerson,
					Name: "Jane Doe",
					Links: []parser.PersonLink{
						{Domain: "linkedin.com", URL: "https://linkedin.com/in/janedoe"},
					},
				},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane Doe", rows[0].FounderName)
	require.Equal(t, "social", rows[0].Classification)
}

func TestLinksDedupsByURLAcrossSections(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Twitter", URL: "https://twitter.com/acme"},
			},
		},
		{
			Kind: parser.SectionFooterMeta,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Twitter again", URL: "https://twitter.com/acme"},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 1)
}

func TestLinksSkipsEmptyURL(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "broken", URL: ""},
			},
		},
	}

	rows := Links("acme", sections)
	require.Len(t, rows, 0)
}
