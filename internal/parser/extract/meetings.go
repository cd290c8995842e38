package extract

import (
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

// meetingPlatforms maps a recognizable domain substring to its display
// label. Checked in order so a more specific substring (e.g. "meet.google")
// never loses to a more general one appearing later in the table.
var meetingPlatforms = []struct {
	substr string
	label  string
}{
	{"calendly.com", "Calendly"},
	{"zoom.us", "Zoom"},
	{"meet.google.com", "Google Meet"},
	{"teams.microsoft.com", "Microsoft Teams"},
	{"whereby.com", "Whereby"},
	{"meetings.hubspot.com", "HubSpot Meetings"},
	{"chilipiper.com", "Chili Piper"},
	{"savvycal.com", "SavvyCal"},
	{"tidycal.com", "TidyCal"},
	{"cal.com", "Cal.com"},
	{"appointlet.com", "Appointlet"},
	{"acuityscheduling.com", "Acuity Scheduling"},
	{"bookwithme.com", "BookWithMe"},
	{"youcanbook.me", "YouCanBook.me"},
	{"meetingbird.com", "Meetingbird"},
	{"setmore.com", "Setmore"},
	{"schedulicity.com", "Schedulicity"},
	{"doodle.com", "Doodle"},
	{"usemotion.com", "Motion"},
}

// Meetings sweeps every section's Link blocks plus every Person's attached
// links for scheduling-tool URLs, deduping by URL across the whole page.
func Meetings(slug string, sections []parser.Section) []store.MeetingLinkRow {
	var out []store.MeetingLinkRow
	seen := map[string]bool{}

	add := func(url string) {
		if seen[url] {
			return
		}
		platform := matchMeetingPlatform(url)
		if platform == "" {
			return
		}
		seen[url] = true
		out = append(out, store.MeetingLinkRow{Slug: slug, URL: url, Platform: platform})
	}

	for _, sec := range sections {
		for _, b := range sec.Blocks {
			switch b.Kind {
			case parser.BlockLink:
				add(b.URL)
			case parser.BlockPerson:
				for _, l := range b.Links {
					add(l.URL)
				}
			}
		}
	}

	return out
}

func matchMeetingPlatform(url string) string {
	lower := strings.ToLower(url)
	for _, p := range meetingPlatforms {
		if strings.Contains(lower, p.substr) {
			return p.label
		}
	}
	return ""
}
