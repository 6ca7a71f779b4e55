package publist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/labsite/internal/reference"
)

func pub(year int, title string) reference.Publication {
	return reference.Publication{Year: year, Title: title, WorkType: "journal-article"}
}

func titles(pubs []reference.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = fmt.Sprintf("%s(%d)", p.Title, p.Year)
	}
	return out
}

func TestSort_YearThenTitle(t *testing.T) {
	in := []reference.Publication{pub(2022, "Zeta"), pub(2023, "Alpha"), pub(2022, "Beta")}

	got := Sort(in)

	assert.Equal(t, []string{"Alpha(2023)", "Beta(2022)", "Zeta(2022)"}, titles(got))
	assert.Equal(t, "Zeta", in[0].Title, "Sort must not reorder its input")
}

func TestSort_LocaleAwareTitles(t *testing.T) {
	in := []reference.Publication{
		pub(2024, "zebra finches"),
		pub(2024, "Éclair models"),
		pub(2024, "Ecology of ants"),
		pub(2024, "apple orchards"),
	}

	got := Sort(in)

	// Byte order would put "Ecology" and "Éclair" apart and capitals first.
	assert.Equal(t, []string{
		"apple orchards(2024)",
		"Éclair models(2024)",
		"Ecology of ants(2024)",
		"zebra finches(2024)",
	}, titles(got))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	first := pub(2021, "Same")
	first.PutCode = 1
	second := pub(2021, "Same")
	second.PutCode = 2

	got := Sort([]reference.Publication{first, pub(2022, "Other"), second})

	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[1].PutCode)
	assert.Equal(t, int64(2), got[2].PutCode)
}

func TestCap(t *testing.T) {
	var pubs []reference.Publication
	for y := 2001; y <= 2020; y++ {
		pubs = append(pubs, pub(y, fmt.Sprintf("Paper %d", y)))
	}

	kept := Cap(Sort(pubs), DefaultMax)

	require.Len(t, kept, 15)
	assert.Equal(t, 2020, kept[0].Year)
	assert.Equal(t, 2006, kept[14].Year)
	for _, p := range kept {
		assert.Greater(t, p.Year, 2005, "year %d should have been capped", p.Year)
	}

	assert.Len(t, Cap(pubs, 0), 20)
	assert.Len(t, Cap(pubs[:3], 15), 3)
}

func TestGroupByYear(t *testing.T) {
	sorted := Sort([]reference.Publication{
		pub(2022, "Zeta"), pub(2023, "Alpha"), pub(2022, "Beta"), pub(2020, "Gamma"),
	})

	groups := GroupByYear(sorted)

	require.Len(t, groups, 3)
	assert.Equal(t, 2023, groups[0].Year)
	assert.Equal(t, 2022, groups[1].Year)
	assert.Equal(t, 2020, groups[2].Year)
	assert.Equal(t, []string{"Beta(2022)", "Zeta(2022)"}, titles(groups[1].Publications))
	for _, g := range groups {
		assert.NotEmpty(t, g.Publications)
	}
}

func TestGroupByYear_Completeness(t *testing.T) {
	var pubs []reference.Publication
	for i := 0; i < 40; i++ {
		pubs = append(pubs, pub(2010+i%7, fmt.Sprintf("Paper %02d", i)))
	}
	capped := Cap(Sort(pubs), DefaultMax)

	flat := Flatten(GroupByYear(capped))

	assert.Equal(t, titles(capped), titles(flat))

	seen := map[int]bool{}
	for _, g := range GroupByYear(capped) {
		assert.False(t, seen[g.Year], "year %d appears twice", g.Year)
		seen[g.Year] = true
	}
}

func TestGroupByYear_UnsortedInput(t *testing.T) {
	groups := GroupByYear([]reference.Publication{pub(2019, "B"), pub(2021, "A"), pub(2019, "A")})

	require.Len(t, groups, 2)
	assert.Equal(t, 2021, groups[0].Year)
	assert.Equal(t, []string{"A(2019)", "B(2019)"}, titles(groups[1].Publications))
}

func TestGroupByYear_Empty(t *testing.T) {
	assert.Empty(t, GroupByYear(nil))
	assert.Empty(t, Flatten(nil))
}
