package reference

import "strings"

// Surname returns the family-name part of a formatted author string
// ("Smith, J. P." yields "Smith"). Strings without a comma are returned whole.
func Surname(formatted string) string {
	if i := strings.Index(formatted, ","); i >= 0 {
		return formatted[:i]
	}
	return formatted
}
