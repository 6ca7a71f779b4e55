package enrich

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/reference"
)

func basePublication() reference.Publication {
	return reference.Publication{
		PutCode:  7,
		DOI:      "10.1/x",
		Title:    "Phylogenetic inference",
		Year:     2023,
		Venue:    "Systematic Biology",
		WorkType: "journal-article",
		URL:      "https://doi.org/10.1/x",
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		pub  reference.Publication
		meta oaworks.Metadata
		want func(reference.Publication) reference.Publication
	}{
		{
			name: "full record",
			pub:  basePublication(),
			meta: oaworks.Metadata{
				Author:         []oaworks.Author{{Family: "Smith", Given: "John Paul"}, {Name: "Consortium"}},
				Volume:         "71",
				Issue:          "3",
				Page:           "512-530",
				ContainerTitle: oaworks.TitleList{"Syst. Biol."},
			},
			want: func(p reference.Publication) reference.Publication {
				p.Authors = []string{"Smith, J. P.", "Consortium"}
				p.Volume, p.Issue, p.Pages = "71", "3", "512-530"
				return p
			},
		},
		{
			name: "authors are overwritten not appended",
			pub: func() reference.Publication {
				p := basePublication()
				p.Authors = []string{"Old, A."}
				return p
			}(),
			meta: oaworks.Metadata{Author: []oaworks.Author{{Family: "New", Given: "Bea"}}},
			want: func(p reference.Publication) reference.Publication {
				p.Authors = []string{"New, B."}
				return p
			},
		},
		{
			name: "absent author list keeps existing authors",
			pub: func() reference.Publication {
				p := basePublication()
				p.Authors = []string{"Old, A."}
				return p
			}(),
			meta: oaworks.Metadata{},
			want: func(p reference.Publication) reference.Publication { return p },
		},
		{
			name: "empty fields never clear",
			pub: func() reference.Publication {
				p := basePublication()
				p.Volume, p.Issue, p.Pages = "9", "1", "1-10"
				return p
			}(),
			meta: oaworks.Metadata{Volume: "", Issue: " ", Page: ""},
			want: func(p reference.Publication) reference.Publication { return p },
		},
		{
			name: "venue back-filled when empty",
			pub: func() reference.Publication {
				p := basePublication()
				p.Venue = ""
				return p
			}(),
			meta: oaworks.Metadata{ContainerTitle: oaworks.TitleList{"Genetics"}},
			want: func(p reference.Publication) reference.Publication {
				p.Venue = "Genetics"
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.pub.Clone()
			got := Merge(tt.pub, tt.meta)

			assert.Empty(t, cmp.Diff(tt.want(before.Clone()), got), "Merge() mismatch (-want +got)")
			assert.Empty(t, cmp.Diff(before, tt.pub), "Merge() modified its input (-before +after)")
		})
	}
}
