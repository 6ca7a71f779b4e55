package orcid

import (
	"strconv"
	"strings"

	"github.com/matsen/labsite/internal/reference"
)

// doiPrefixes are resolver prefixes sometimes stored in the DOI value itself.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
	"DOI:",
}

// ParseWorks converts a works response into publications, dropping groups
// without a summary and records whose year is missing or invalid.
func ParseWorks(resp *WorksResponse) []reference.Publication {
	if resp == nil {
		return nil
	}

	pubs := make([]reference.Publication, 0, len(resp.Group))
	for _, group := range resp.Group {
		if len(group.WorkSummary) == 0 {
			continue
		}
		pub, ok := ParseWork(group.WorkSummary[0])
		if !ok {
			continue
		}
		pubs = append(pubs, pub)
	}
	return pubs
}

// ParseWork maps one work summary to a publication. The boolean is false
// when the record has no valid four-digit year; the returned publication
// is still populated so callers can report it.
func ParseWork(ws WorkSummary) (reference.Publication, bool) {
	pub := reference.Publication{
		PutCode:  ws.PutCode,
		Title:    reference.UntitledTitle,
		WorkType: reference.DefaultWorkType,
	}

	if ws.Title != nil && ws.Title.Title != nil {
		if title := strings.TrimSpace(ws.Title.Title.Value); title != "" {
			pub.Title = title
		}
	}
	if ws.JournalTitle != nil {
		pub.Venue = strings.TrimSpace(ws.JournalTitle.Value)
	}
	if t := strings.TrimSpace(ws.Type); t != "" {
		pub.WorkType = strings.ToLower(t)
	}

	pub.DOI = findDOI(ws.ExternalIDs)

	if ws.URL != nil {
		pub.URL = strings.TrimSpace(ws.URL.Value)
	}
	if pub.URL == "" && pub.DOI != "" {
		pub.URL = reference.DOIURL(pub.DOI)
	}

	year, ok := parseYear(ws.PublicationDate)
	pub.Year = year
	return pub, ok
}

// findDOI returns the first external identifier declared as a DOI.
func findDOI(ids *ExternalIDs) string {
	if ids == nil {
		return ""
	}
	for _, id := range ids.ExternalID {
		if strings.EqualFold(strings.TrimSpace(id.Type), "doi") {
			return CleanDOI(id.Value)
		}
	}
	return ""
}

// CleanDOI trims whitespace and resolver prefixes from a DOI, keeping its case.
func CleanDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range doiPrefixes {
		if strings.HasPrefix(doi, prefix) {
			doi = strings.TrimPrefix(doi, prefix)
			break
		}
	}
	return doi
}

// parseYear returns the publication year if it is a four-digit number.
func parseYear(date *PublicationDate) (int, bool) {
	if date == nil || date.Year == nil {
		return 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(date.Year.Value))
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}
