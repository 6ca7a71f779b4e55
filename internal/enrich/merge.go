package enrich

import (
	"strings"

	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/reference"
)

// Merge returns pub with the metadata record folded in. The author list is
// rebuilt from scratch when the record has one; volume, issue and pages
// are only ever set, never cleared; the venue is back-filled only when
// pub has none. pub itself is not modified.
func Merge(pub reference.Publication, meta oaworks.Metadata) reference.Publication {
	out := pub.Clone()

	if meta.Author != nil {
		out.Authors = FormatAuthors(meta.Author)
	}
	if v := strings.TrimSpace(meta.Volume.String()); v != "" {
		out.Volume = v
	}
	if v := strings.TrimSpace(meta.Issue.String()); v != "" {
		out.Issue = v
	}
	if v := strings.TrimSpace(meta.Page.String()); v != "" {
		out.Pages = v
	}
	if out.Venue == "" {
		out.Venue = strings.TrimSpace(meta.ContainerTitle.First())
	}

	return out
}
