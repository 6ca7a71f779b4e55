// Package reference defines the core domain types for the publications list.
package reference

import (
	"fmt"
	"slices"
)

// UntitledTitle is used when the registry record carries no title.
const UntitledTitle = "Untitled"

// DefaultWorkType is used when the registry record carries no work type.
const DefaultWorkType = "article"

// DOIURLTemplate builds a resolver link from a DOI.
const DOIURLTemplate = "https://doi.org/%s"

// DOIURL returns the resolver link for a DOI.
func DOIURL(doi string) string {
	return fmt.Sprintf(DOIURLTemplate, doi)
}

// Publication is the canonical record for one scholarly work.
//
// Optional values use the zero value for "absent": an empty string for
// scalar fields and a nil slice for Authors. An empty but non-nil Authors
// slice means the metadata service answered with no authors.
type Publication struct {
	// Identity
	PutCode int64  `json:"put_code,omitempty"` // Registry record key, traceability only
	DOI     string `json:"doi,omitempty"`      // External identifier

	// Metadata
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Venue    string `json:"venue,omitempty"` // Journal or proceedings name
	WorkType string `json:"work_type"`       // journal-article, conference-paper, ...
	URL      string `json:"url,omitempty"`

	// Filled by metadata enrichment only
	Authors []string `json:"authors,omitempty"` // Formatted as "Family, G."
	Volume  string   `json:"volume,omitempty"`
	Issue   string   `json:"issue,omitempty"`
	Pages   string   `json:"pages,omitempty"`
}

// HasDOI reports whether the publication can be looked up by DOI.
func (p Publication) HasDOI() bool {
	return p.DOI != ""
}

// Clone returns a copy that shares no mutable state with p.
func (p Publication) Clone() Publication {
	p.Authors = slices.Clone(p.Authors)
	return p
}

// YearGroup holds the publications of a single year, in display order.
type YearGroup struct {
	Year         int           `json:"year"`
	Publications []Publication `json:"publications"`
}
