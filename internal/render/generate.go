package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-manager/internal/style"
	"github.com/jonathan/cv-manager/internal/types"
)

// Format is an output format tag.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat validates a raw format tag. Anything outside the
// supported set returns ErrUnknownFormat.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatMarkdown, FormatHTML, FormatPDF:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("%w: %q (valid: markdown, html, pdf)", ErrUnknownFormat, raw)
	}
}

// extensions maps formats to artifact file extensions.
var extensions = map[Format]string{
	FormatMarkdown: ".md",
	FormatHTML:     ".html",
	FormatPDF:      ".pdf",
}

// Request combines a style, an output format, and optional overrides
// for one render call.
type Request struct {
	Style    string
	Format   Format
	Sections []style.SectionID
	Limits   map[style.SectionID]int
	// OutputPath overrides the default artifact path when non-empty.
	OutputPath string
	// PDF holds browser options for the pdf format only.
	PDF *PDFOptions
}

// Artifact is the written output of one render call.
type Artifact struct {
	Path    string
	Content []byte
}

// DefaultArtifactPath returns the deterministic artifact path for a
// style/format pair under outputDir: cv_{style}{ext}.
func DefaultArtifactPath(outputDir, styleTag string, format Format) string {
	return filepath.Join(outputDir, fmt.Sprintf("cv_%s%s", styleTag, extensions[format]))
}

// Generate validates the request eagerly, projects the record through
// the resolved section plan, renders the requested format, and writes
// the artifact. No file is written on any validation or render failure.
// Existing artifacts are overwritten silently.
func Generate(ctx context.Context, record *types.CVRecord, req Request, outputDir string) (*Artifact, error) {
	// Validate style and format before any work so failures never leave
	// a partial artifact behind.
	prof, err := style.Lookup(req.Style)
	if err != nil {
		return nil, err
	}
	if _, err := ParseFormat(string(req.Format)); err != nil {
		return nil, err
	}

	plan, err := style.Select(req.Style, record, style.Overrides{
		Sections: req.Sections,
		Limits:   req.Limits,
	})
	if err != nil {
		return nil, err
	}

	blocks := BuildBlocks(record, plan, prof)

	var content []byte
	switch req.Format {
	case FormatMarkdown:
		content = []byte(RenderMarkdown(record, blocks))
	case FormatHTML:
		htmlContent, err := RenderHTML(record, blocks, req.Style)
		if err != nil {
			return nil, err
		}
		content = []byte(htmlContent)
	case FormatPDF:
		htmlContent, err := RenderHTML(record, blocks, req.Style)
		if err != nil {
			return nil, err
		}
		content, err = RenderPDF(ctx, htmlContent, req.PDF)
		if err != nil {
			return nil, err
		}
	}

	path := req.OutputPath
	if path == "" {
		path = DefaultArtifactPath(outputDir, req.Style, req.Format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	return &Artifact{Path: path, Content: content}, nil
}
