package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/matsen/labsite/internal/oaworks"
)

// FormatAuthor renders a metadata author as "Family, G. N.".
// When only one name part is present it is used alone; a literal name is
// the last resort before the empty string.
func FormatAuthor(a oaworks.Author) string {
	family := strings.TrimSpace(a.Family)
	given := strings.TrimSpace(a.Given)

	switch {
	case family != "" && given != "":
		return family + ", " + initials(given)
	case family != "":
		return family
	case given != "":
		return given
	}
	return strings.TrimSpace(a.Name)
}

// FormatAuthors formats every author in order.
func FormatAuthors(authors []oaworks.Author) []string {
	out := make([]string, len(authors))
	for i, a := range authors {
		out[i] = FormatAuthor(a)
	}
	return out
}

// initials abbreviates each whitespace-separated given name to its first letter.
func initials(given string) string {
	parts := strings.Fields(given)
	for i, p := range parts {
		r, _ := utf8.DecodeRuneInString(p)
		parts[i] = string(r) + "."
	}
	return strings.Join(parts, " ")
}
