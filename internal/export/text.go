package export

import (
	"strconv"
	"strings"

	"github.com/matsen/labsite/internal/reference"
)

// AuthorLine joins the formatted authors with semicolons.
func AuthorLine(pub reference.Publication) string {
	return strings.Join(pub.Authors, "; ")
}

// VenueLine renders "Venue, Volume(Issue), Pages, Year." The issue is
// attached to whatever part precedes it. Without a venue only "Year." is
// returned.
func VenueLine(pub reference.Publication) string {
	year := ""
	if pub.Year != 0 {
		year = strconv.Itoa(pub.Year)
	}

	if pub.Venue == "" {
		if year == "" {
			return ""
		}
		return year + "."
	}

	parts := []string{pub.Venue}
	if pub.Volume != "" {
		parts = append(parts, pub.Volume)
	}
	if pub.Issue != "" {
		parts[len(parts)-1] += "(" + pub.Issue + ")"
	}
	if pub.Pages != "" {
		parts = append(parts, pub.Pages)
	}
	if year != "" {
		parts = append(parts, year)
	}
	return strings.Join(parts, ", ") + "."
}

// Link returns the publication's URL, falling back to its DOI resolver link.
func Link(pub reference.Publication) string {
	if pub.URL != "" {
		return pub.URL
	}
	if pub.DOI != "" {
		return reference.DOIURL(pub.DOI)
	}
	return ""
}
