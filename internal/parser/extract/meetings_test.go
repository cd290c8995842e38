package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catalogscrape/internal/parser"
)

func TestMeetingsMatchesKnownPlatforms(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Book a call", URL: "https://calendly.com/acme/intro"},
				{Kind: parser.BlockLink, LinkText: "Join", URL: "https://meet.google.com/abc-defg-hij"},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 2)
	require.Equal(t, "Calendly", rows[0].Platform)
	require.Equal(t, "Google Meet", rows[1].Platform)
}

func TestMeetingsMatchesMotion(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Book time", URL: "https://usemotion.com/meet/acme"},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 1)
	require.Equal(t, "Motion", rows[0].Platform)
}

func TestMeetingsIgnoresUnrecognizedURLs(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Homepage", URL: "https://acme.com"},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 0)
}

func TestMeetingsFromPersonLinks(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionFounders,
			Blocks: []parser.Block{
				{
					Kind: parser.BlockPerson,
					Name: "Jane Doe",
					Links: []parser.PersonLink{
						{Domain: "cal.com", URL: "https://cal.com/janedoe"},
					},
				},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 1)
	require.Equal(t, "Cal.com", rows[0].Platform)
}

func TestMeetingsDedupsByURL(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Book", URL: "https://calendly.com/acme/intro"},
				{Kind: parser.BlockLink, LinkText: "Book again", URL: "https://calendly.com/acme/intro"},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 1)
}

func TestMeetingsMatchIsCaseInsensitive(t *testing.T) {
	sections := []parser.Section{
		{
			Kind: parser.SectionDescription,
			Blocks: []parser.Block{
				{Kind: parser.BlockLink, LinkText: "Book", URL: "https://CALENDLY.com/acme/intro"},
			},
		},
	}

	rows := Meetings("acme", sections)
	require.Len(t, rows, 1)
	require.Equal(t, "Calendly", rows[0].Platform)
}
