package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/labsite/internal/oaworks"
	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/pipeline"
	"github.com/matsen/labsite/internal/reference"
)

// UnableToLoadMessage is shown when the publication list cannot be built.
const UnableToLoadMessage = "Unable to Load Publications"

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSON(os.Stdout, v)
}

// writeJSON writes a value as formatted JSON to w.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	_ = logger.Sync()
	os.Exit(code)
}

// exitUnableToLoad reports a failed publications run and exits.
func exitUnableToLoad(err error) {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "%s\n  %v\n", UnableToLoadMessage, err)
	} else {
		outputJSON(ErrorResponse{Error: UnableToLoadMessage, Code: errorCode(err), Detail: err.Error()})
	}
	_ = logger.Sync()
	os.Exit(exitCodeFor(err))
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// WorksResponse is the response for the works command.
type WorksResponse struct {
	ORCID        string                  `json:"orcid"`
	Total        int                     `json:"total"`
	Count        int                     `json:"count"`
	Publications []reference.Publication `json:"publications"`
}

// MetadataResponse is the response for the metadata command.
type MetadataResponse struct {
	DOI     string   `json:"doi"`
	Authors []string `json:"authors"`
	Venue   string   `json:"venue,omitempty"`
	Volume  string   `json:"volume,omitempty"`
	Issue   string   `json:"issue,omitempty"`
	Pages   string   `json:"pages,omitempty"`
}

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	ORCIDID         string `json:"orcid_id"`
	ORCIDURL        string `json:"orcid_url"`
	MetadataURL     string `json:"metadata_url"`
	MaxPublications int    `json:"max_publications"`
	BatchSize       int    `json:"batch_size"`
	RequestTimeout  string `json:"request_timeout"`
	LogLevel        string `json:"log_level"`
	UserAgent       string `json:"user_agent,omitempty"`
}

// errorCode classifies a pipeline or client error for JSON output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrNoPublications):
		return "no_publications"
	case orcid.IsNotFound(err), oaworks.IsNotFound(err):
		return "not_found"
	case orcid.IsRateLimited(err), oaworks.IsRateLimited(err):
		return "rate_limited"
	case errors.Is(err, pipeline.ErrRegistryUnavailable):
		return "registry_unavailable"
	}
	return "api_error"
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, pipeline.ErrRegistryUnavailable),
		errors.Is(err, pipeline.ErrNoPublications),
		errors.Is(err, orcid.ErrInvalidResponse),
		errors.Is(err, oaworks.ErrInvalidResponse),
		errors.Is(err, oaworks.ErrEmptyDOI),
		orcid.IsNotFound(err), oaworks.IsNotFound(err),
		orcid.IsRateLimited(err), oaworks.IsRateLimited(err):
		return ExitDataError
	}
	return ExitError
}

// formatResultHuman renders the grouped publication list for a terminal.
func formatResultHuman(r *pipeline.Result) string {
	var sb strings.Builder
	for i, g := range r.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d\n", g.Year))
		for _, e := range g.Entries {
			sb.WriteString(fmt.Sprintf("  %s\n", e.Title))
			if e.AuthorLine != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", e.AuthorLine))
			}
			if e.VenueLine != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", e.VenueLine))
			}
			if e.Link != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", e.Link))
			}
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d publications", r.Count(), r.Total))
	if s := r.Enrichment; s.Failed > 0 {
		sb.WriteString(fmt.Sprintf(" (%d metadata lookups failed)", s.Failed))
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatWorksHuman renders parsed works one per line.
func formatWorksHuman(pubs []reference.Publication, total int) string {
	var sb strings.Builder
	for _, p := range pubs {
		sb.WriteString(fmt.Sprintf("%d  %s", p.Year, p.Title))
		if p.Venue != "" {
			sb.WriteString(fmt.Sprintf(" - %s", p.Venue))
		}
		if p.DOI != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", p.DOI))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d works\n", len(pubs), total))
	return sb.String()
}

// formatMetadataHuman renders a single metadata lookup.
func formatMetadataHuman(m MetadataResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("DOI:     %s\n", m.DOI))
	if len(m.Authors) > 0 {
		sb.WriteString(fmt.Sprintf("Authors: %s\n", strings.Join(m.Authors, "; ")))
	} else {
		sb.WriteString("Authors: (none)\n")
	}
	if m.Venue != "" {
		sb.WriteString(fmt.Sprintf("Venue:   %s\n", m.Venue))
	}
	if m.Volume != "" {
		sb.WriteString(fmt.Sprintf("Volume:  %s\n", m.Volume))
	}
	if m.Issue != "" {
		sb.WriteString(fmt.Sprintf("Issue:   %s\n", m.Issue))
	}
	if m.Pages != "" {
		sb.WriteString(fmt.Sprintf("Pages:   %s\n", m.Pages))
	}
	return sb.String()
}
