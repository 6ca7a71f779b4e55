// Package orcid provides a client for the ORCID public registry and the
// parser that turns registry work summaries into publications.
package orcid

import (
	"bytes"
	"encoding/json"
)

// WorksResponse is the body of GET /{orcid}/works.
// Group is nil when the body carries no "group" member at all.
type WorksResponse struct {
	Group []WorkGroup `json:"group"`
}

// WorkGroup wraps the summaries the registry grouped as one work.
// The first summary is the preferred version.
type WorkGroup struct {
	WorkSummary []WorkSummary `json:"work-summary"`
}

// WorkSummary is a single registry work record. Every member is optional.
type WorkSummary struct {
	PutCode         int64            `json:"put-code"`
	Title           *WorkTitle       `json:"title"`
	PublicationDate *PublicationDate `json:"publication-date"`
	JournalTitle    *Value           `json:"journal-title"`
	Type            string           `json:"type"`
	ExternalIDs     *ExternalIDs     `json:"external-ids"`
	URL             *Value           `json:"url"`
}

// Value is the registry's {"value": ...} wrapper. Numbers and booleans
// are kept as their JSON text; objects, arrays and null decode as "". A
// bare scalar in place of the wrapper is accepted too.
type Value struct {
	Value string `json:"value"`
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		v.Value = scalarText(data)
		return nil
	}
	v.Value = scalarText(wrapper.Value)
	return nil
}

// scalarText renders a JSON scalar as text and anything else as "".
func scalarText(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	}
	// Numbers and booleans
	return string(data)
}

// WorkTitle holds the work title and optional subtitle.
type WorkTitle struct {
	Title    *Value `json:"title"`
	Subtitle *Value `json:"subtitle"`
}

// PublicationDate holds the date parts as the registry's string values.
type PublicationDate struct {
	Year  *Value `json:"year"`
	Month *Value `json:"month"`
	Day   *Value `json:"day"`
}

// ExternalIDs lists the identifiers attached to a work.
type ExternalIDs struct {
	ExternalID []ExternalID `json:"external-id"`
}

// ExternalID is one identifier (DOI, PMID, arXiv, ...) of a work.
type ExternalID struct {
	Type         string `json:"external-id-type"`
	Value        string `json:"external-id-value"`
	URL          *Value `json:"external-id-url"`
	Relationship string `json:"external-id-relationship"`
}
