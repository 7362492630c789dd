// Package letter generates cover letters from the embedded template
// set, filling fields from the CV record and a per-application fields
// file.
package letter

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/jonathan/cv-manager/internal/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ErrUnknownTemplate indicates a template name outside the embedded set.
var ErrUnknownTemplate = errors.New("unknown letter template")

// TemplateError represents an error parsing or executing a letter
// template, including a field referenced by the template but absent
// from the merged field set.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("letter template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("letter template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Templates returns the available template names in sorted order.
func Templates() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names
}

// DefaultFields derives letter fields from the CV record: contact
// details, the current position, and today's date. Caller-supplied
// fields are merged over these.
func DefaultFields(record *types.CVRecord, now time.Time) map[string]string {
	fields := map[string]string{
		"date":          now.Format("2 January 2006"),
		"name":          record.PersonalInfo.Name,
		"email":         record.PersonalInfo.Email,
		"phone":         record.PersonalInfo.Phone,
		"current_title": record.PersonalInfo.Title,
		"signature":     record.PersonalInfo.Name,
		"salutation":    "Hiring Committee",
	}
	if len(record.WorkExperience) > 0 {
		fields["current_position"] = record.WorkExperience[0].Position
		fields["current_institution"] = record.WorkExperience[0].Company
	}
	return fields
}

// Generate renders the named template with fields merged over the
// record-derived defaults. A field the template references but the
// merged set lacks fails the render; the error propagates unmodified.
func Generate(templateName string, record *types.CVRecord, fields map[string]string, now time.Time) (string, error) {
	raw, err := templatesFS.ReadFile(fmt.Sprintf("templates/%s.tmpl", templateName))
	if err != nil {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknownTemplate, templateName, Templates())
	}

	merged := DefaultFields(record, now)
	for key, value := range fields {
		merged[key] = value
	}

	tmpl, err := template.New(templateName).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, merged); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}
