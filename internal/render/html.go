package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/cv-manager/internal/types"
)

//go:embed assets/document.html.tmpl assets/styles/*.css
var assetsFS embed.FS

// markdownConverter converts the Markdown body into HTML. Unsafe
// rendering is enabled so raw HTML in responsibility text passes
// through; the data file is the user's own content.
var markdownConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// stylesheetForStyle maps a style tag to an embedded stylesheet name.
// Research and academic audiences get the serif academic sheet; the
// rest get the professional sheet.
func stylesheetForStyle(styleTag string) string {
	switch styleTag {
	case "research", "academic":
		return "academic"
	default:
		return "professional"
	}
}

type documentData struct {
	Title      string
	Stylesheet template.CSS
	Body       template.HTML
}

// RenderHTML converts the Markdown rendition of the blocks into a full
// styled HTML document using the embedded document template and the
// stylesheet for the given style tag. Template failures propagate as
// *TemplateError.
func RenderHTML(record *types.CVRecord, blocks []Block, styleTag string) (string, error) {
	markdown := RenderMarkdown(record, blocks)

	var body bytes.Buffer
	if err := markdownConverter.Convert([]byte(markdown), &body); err != nil {
		return "", &RenderError{Message: "markdown conversion failed", Cause: err}
	}

	stylesheet, err := assetsFS.ReadFile(fmt.Sprintf("assets/styles/%s.css", stylesheetForStyle(styleTag)))
	if err != nil {
		return "", &TemplateError{Message: "stylesheet not found", Cause: err}
	}

	tmplBytes, err := assetsFS.ReadFile("assets/document.html.tmpl")
	if err != nil {
		return "", &TemplateError{Message: "document template not found", Cause: err}
	}

	tmpl, err := template.New("document").Parse(string(tmplBytes))
	if err != nil {
		return "", &TemplateError{Message: "failed to parse document template", Cause: err}
	}

	var out strings.Builder
	data := documentData{
		Title:      record.PersonalInfo.Name,
		Stylesheet: template.CSS(stylesheet),
		Body:       template.HTML(body.String()),
	}
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute document template", Cause: err}
	}
	return out.String(), nil
}
