package export

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// BibEntry is one parsed BibTeX entry. Fields keeps the values by name and
// Order keeps the field names as they appeared.
type BibEntry struct {
	Type   string
	Key    string
	Fields map[string]string
	Order  []string
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`^@(\w+)\{([^,\s]*),\s*$`)
	// Match a braced field: name = {value} with optional trailing comma
	fieldRegex = regexp.MustCompile(`^\s+(\w+)\s*=\s*\{(.*)\},?\s*$`)
)

// ParseBibTeX reads entries in the layout written by ToBibTeX: one entry
// header line, one field per line, and a closing brace on its own line.
func ParseBibTeX(text string) ([]BibEntry, error) {
	var entries []BibEntry
	var current *BibEntry

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case strings.TrimSpace(line) == "":
			continue

		case entryStartRegex.MatchString(line):
			if current != nil {
				return nil, fmt.Errorf("line %d: entry %q not closed", lineNo, current.Key)
			}
			m := entryStartRegex.FindStringSubmatch(line)
			current = &BibEntry{Type: m[1], Key: m[2], Fields: make(map[string]string)}

		case strings.TrimSpace(line) == "}":
			if current == nil {
				return nil, fmt.Errorf("line %d: unexpected closing brace", lineNo)
			}
			entries = append(entries, *current)
			current = nil

		case fieldRegex.MatchString(line):
			if current == nil {
				return nil, fmt.Errorf("line %d: field outside of an entry", lineNo)
			}
			m := fieldRegex.FindStringSubmatch(line)
			name := strings.ToLower(m[1])
			if _, dup := current.Fields[name]; dup {
				return nil, fmt.Errorf("line %d: duplicate field %q in %q", lineNo, name, current.Key)
			}
			current.Fields[name] = m[2]
			current.Order = append(current.Order, name)

		default:
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("entry %q not closed", current.Key)
	}

	return entries, nil
}

// String renders the entry back in ToBibTeX's layout.
func (e BibEntry) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", e.Type, e.Key))
	for _, name := range e.Order {
		writeField(&b, name, e.Fields[name])
	}
	b.WriteString("}")
	return b.String()
}
