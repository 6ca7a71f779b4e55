package orcid

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches the hyphenated 16-character ORCID iD form.
var idPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// NormalizeID strips a leading https://orcid.org/ and surrounding space,
// and upper-cases the check character.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "https://orcid.org/")
	id = strings.TrimPrefix(id, "http://orcid.org/")
	id = strings.TrimPrefix(id, "orcid.org/")
	return strings.ToUpper(id)
}

// ValidateID checks the shape and the ISO 7064 MOD 11-2 check character
// of an ORCID iD.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q does not match dddd-dddd-dddd-dddX", ErrInvalidID, id)
	}

	digits := strings.ReplaceAll(id, "-", "")
	want := checkDigit(digits[:15])
	if digits[15] != want {
		return fmt.Errorf("%w: %q has check character %c, want %c", ErrInvalidID, id, digits[15], want)
	}
	return nil
}

// checkDigit computes the MOD 11-2 check character for 15 base digits.
func checkDigit(base string) byte {
	total := 0
	for i := 0; i < len(base); i++ {
		total = (total + int(base[i]-'0')) * 2
	}
	result := (12 - total%11) % 11
	if result == 10 {
		return 'X'
	}
	return byte('0' + result)
}
