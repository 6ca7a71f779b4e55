// Package publist orders, caps and groups publications for display.
package publist

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matsen/labsite/internal/reference"
)

// DefaultMax is the number of publications kept after sorting.
const DefaultMax = 15

// Sort returns a copy of pubs ordered by year descending, then by title
// using English collation. The sort is stable, so records with equal year
// and title keep their input order.
func Sort(pubs []reference.Publication) []reference.Publication {
	return SortWithLocale(pubs, language.English)
}

// SortWithLocale is Sort with a caller-chosen collation locale.
func SortWithLocale(pubs []reference.Publication, tag language.Tag) []reference.Publication {
	sorted := slices.Clone(pubs)
	// Collators carry internal buffers and are not safe for concurrent use.
	c := collate.New(tag)
	slices.SortStableFunc(sorted, func(a, b reference.Publication) int {
		if a.Year != b.Year {
			return cmp.Compare(b.Year, a.Year)
		}
		return c.CompareString(a.Title, b.Title)
	})
	return sorted
}

// Cap returns at most n leading publications. A non-positive n keeps all.
func Cap(pubs []reference.Publication, n int) []reference.Publication {
	if n <= 0 || len(pubs) <= n {
		return pubs
	}
	return pubs[:n]
}

// GroupByYear partitions sorted publications into year groups. Groups
// appear in descending year order and keep the input order within a year.
// The input is sorted first when it is not already in year order.
func GroupByYear(pubs []reference.Publication) []reference.YearGroup {
	if !slices.IsSortedFunc(pubs, func(a, b reference.Publication) int {
		return cmp.Compare(b.Year, a.Year)
	}) {
		pubs = Sort(pubs)
	}

	var groups []reference.YearGroup
	for _, p := range pubs {
		if n := len(groups); n > 0 && groups[n-1].Year == p.Year {
			groups[n-1].Publications = append(groups[n-1].Publications, p)
			continue
		}
		groups = append(groups, reference.YearGroup{
			Year:         p.Year,
			Publications: []reference.Publication{p},
		})
	}
	return groups
}

// Flatten concatenates the groups back into a single ordered list.
func Flatten(groups []reference.YearGroup) []reference.Publication {
	var pubs []reference.Publication
	for _, g := range groups {
		pubs = append(pubs, g.Publications...)
	}
	return pubs
}
