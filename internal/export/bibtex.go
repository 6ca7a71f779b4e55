// Package export renders publications as BibTeX and as the plain-text
// lines shown on the publications page.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matsen/labsite/internal/reference"
)

// DefaultCitationKey is used when a publication has no authors.
const DefaultCitationKey = "publication"

// conferenceWorkTypes are registry work types exported as @inproceedings.
var conferenceWorkTypes = map[string]bool{
	"conference-paper":    true,
	"conference-abstract": true,
	"conference-poster":   true,
}

// ToBibTeX converts a publication to a BibTeX entry. The output is a pure
// function of the publication: identical input yields identical bytes.
func ToBibTeX(pub reference.Publication) string {
	entryType := EntryType(pub)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, CitationKey(pub)))

	// Authors
	if authors := strings.Join(pub.Authors, " and "); authors != "" {
		writeField(&b, "author", authors)
	}

	// Title
	if pub.Title != "" {
		writeField(&b, "title", pub.Title)
	}

	// Venue
	if pub.Venue != "" {
		writeField(&b, venueField(entryType), pub.Venue)
	}

	// Volume, with the issue folded in as "12(3)"
	if pub.Volume != "" {
		volume := pub.Volume
		if pub.Issue != "" {
			volume += "(" + pub.Issue + ")"
		}
		writeField(&b, "volume", volume)
	}

	// Pages
	if pub.Pages != "" {
		writeField(&b, "pages", pub.Pages)
	}

	// Year
	if pub.Year != 0 {
		writeField(&b, "year", strconv.Itoa(pub.Year))
	}

	// DOI closes the entry without a trailing comma
	if pub.DOI != "" {
		writeField(&b, "doi", pub.DOI)
	}

	b.WriteString("}")

	return b.String()
}

// ToBibTeXList converts multiple publications, separating entries with a
// blank line.
func ToBibTeXList(pubs []reference.Publication) string {
	entries := make([]string, 0, len(pubs))
	for _, pub := range pubs {
		entries = append(entries, ToBibTeX(pub))
	}
	return strings.Join(entries, "\n\n")
}

// CitationKey builds the key from the first author's surname, lowercased
// with all whitespace removed, followed by the year.
func CitationKey(pub reference.Publication) string {
	if len(pub.Authors) == 0 {
		return DefaultCitationKey
	}

	surname := cases.Lower(language.Und).String(reference.Surname(pub.Authors[0]))
	surname = strings.Join(strings.Fields(surname), "")

	if pub.Year == 0 {
		return surname
	}
	return surname + strconv.Itoa(pub.Year)
}

// EntryType returns the BibTeX entry type for a publication.
func EntryType(pub reference.Publication) string {
	if conferenceWorkTypes[pub.WorkType] {
		return "inproceedings"
	}
	return "article"
}

// venueField names the venue field for an entry type.
func venueField(entryType string) string {
	if entryType == "inproceedings" {
		return "booktitle"
	}
	return "journal"
}

// writeField writes one "  name = {value}" line. Runs of whitespace in the
// value, newlines included, collapse to a single space so every field stays
// on one line. Every field but doi ends with a comma.
func writeField(b *strings.Builder, name, value string) {
	value = strings.Join(strings.Fields(value), " ")
	b.WriteString(fmt.Sprintf("  %s = {%s}", name, value))
	if name != "doi" {
		b.WriteString(",")
	}
	b.WriteString("\n")
}
