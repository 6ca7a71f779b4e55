package pipeline

import (
	"github.com/matsen/labsite/internal/enrich"
	"github.com/matsen/labsite/internal/export"
	"github.com/matsen/labsite/internal/publist"
	"github.com/matsen/labsite/internal/reference"
)

// Entry is a publication together with everything the page shows for it.
type Entry struct {
	reference.Publication
	AuthorLine string `json:"author_line,omitempty"`
	VenueLine  string `json:"venue_line,omitempty"`
	Link       string `json:"link,omitempty"`
	Citation   string `json:"bibtex"`
}

// Group is one year's entries, in display order.
type Group struct {
	Year    int     `json:"year"`
	Entries []Entry `json:"entries"`
}

// Result is the output of one Run. Groups are ordered by year, newest
// first, and no group is empty.
type Result struct {
	ORCID      string       `json:"orcid"`
	Total      int          `json:"total"`
	Groups     []Group      `json:"groups"`
	Enrichment enrich.Stats `json:"enrichment"`
}

// NewEntry renders the display and citation text for pub.
func NewEntry(pub reference.Publication) Entry {
	return Entry{
		Publication: pub,
		AuthorLine:  export.AuthorLine(pub),
		VenueLine:   export.VenueLine(pub),
		Link:        export.Link(pub),
		Citation:    export.ToBibTeX(pub),
	}
}

func buildGroups(groups []reference.YearGroup) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		entries := make([]Entry, 0, len(g.Publications))
		for _, pub := range g.Publications {
			entries = append(entries, NewEntry(pub))
		}
		out = append(out, Group{Year: g.Year, Entries: entries})
	}
	return out
}

// Publications returns the entries' publications in display order.
func (r *Result) Publications() []reference.Publication {
	var yearGroups []reference.YearGroup
	for _, g := range r.Groups {
		yg := reference.YearGroup{Year: g.Year}
		for _, e := range g.Entries {
			yg.Publications = append(yg.Publications, e.Publication)
		}
		yearGroups = append(yearGroups, yg)
	}
	return publist.Flatten(yearGroups)
}

// Count returns the number of entries across all groups.
func (r *Result) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Entries)
	}
	return n
}

// BibTeX returns every citation in display order, separated by blank lines.
func (r *Result) BibTeX() string {
	return export.ToBibTeXList(r.Publications())
}
