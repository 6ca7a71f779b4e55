// Package oaworks provides a client for the OA.Works bibliographic metadata
// service, which returns CSL-style records keyed by DOI.
package oaworks

import (
	"encoding/json"
	"fmt"
)

// Metadata is the subset of a metadata record used for enrichment.
// Author is nil when the record has no "author" member.
type Metadata struct {
	DOI            string         `json:"DOI"`
	Author         []Author       `json:"author"`
	Volume         FlexibleString `json:"volume"`
	Issue          FlexibleString `json:"issue"`
	Page           FlexibleString `json:"page"`
	ContainerTitle TitleList      `json:"container-title"`
}

// Author is one CSL name: either family/given parts or a literal name.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given"`
	Name   string `json:"name"`
}

// FlexibleString can unmarshal from either string or number JSON values.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// TitleList accepts a single string or an array of strings.
// CSL records usually carry container-title as an array.
type TitleList []string

func (t *TitleList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TitleList{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("cannot unmarshal %s into TitleList", string(data))
	}
	*t = list
	return nil
}

// First returns the first non-empty title, or "".
func (t TitleList) First() string {
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}
