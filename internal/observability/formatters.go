// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-manager/internal/style"
	"github.com/jonathan/cv-manager/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecordSummary outputs a human-readable summary of the loaded CV record.
func (p *Printer) PrintRecordSummary(record *types.CVRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", record.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:  %s\n", record.PersonalInfo.Title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience entries:   %d\n", len(record.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Education entries:    %d\n", len(record.Education)))
	sb.WriteString(fmt.Sprintf("Publications:         %d\n", len(record.Publications.AllPublications())))
	sb.WriteString(fmt.Sprintf("Certifications:       %d\n", len(record.Certifications)))
	sb.WriteString(fmt.Sprintf("Skill categories:     %d", len(record.Skills)))

	p.printBox("CV RECORD", sb.String())
}

// PrintSectionPlan outputs the resolved section plan for a render call.
func (p *Printer) PrintSectionPlan(styleTag string, plan []style.SectionSpec) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Style: %s\n\n", styleTag))
	for i, spec := range plan {
		limit := "all"
		if spec.Limit > 0 {
			limit = fmt.Sprintf("first %d", spec.Limit)
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s)", i+1, spec.ID, limit))
		if i < len(plan)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SECTION PLAN", sb.String())
}

// PrintMetricsSummary outputs the cached citation metrics.
func (p *Printer) PrintMetricsSummary(cache *types.MetricsCache) {
	if cache == nil {
		return
	}

	var sb strings.Builder
	if cache.Profile != nil {
		sb.WriteString(fmt.Sprintf("Citations: %d\n", cache.Profile.Citations))
		sb.WriteString(fmt.Sprintf("h-index:   %d\n", cache.Profile.HIndex))
		sb.WriteString(fmt.Sprintf("i10-index: %d\n", cache.Profile.I10Index))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Cached publications: %d\n", len(cache.Publications)))
	shown := 0
	for title, pub := range cache.Publications {
		if shown == maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(cache.Publications)-maxItemsToShow))
			break
		}
		name := title
		if len(name) > 35 {
			name = name[:32] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s: %d\n", name, pub.Citations))
		shown++
	}

	p.printBox("PUBLICATION METRICS", strings.TrimSuffix(sb.String(), "\n"))
}
