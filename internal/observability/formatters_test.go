package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/style"
	"github.com/jonathan/cv-manager/internal/types"
)

func TestPrintRecordSummary(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintRecordSummary(&types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "Dana Okafor", Title: "Senior Lecturer"},
		WorkExperience: []types.Experience{
			{Company: "Strathmore University", Position: "Senior Lecturer", Period: "2018 - Present", Responsibilities: []string{"Teaching"}},
		},
		Skills: map[string][]types.Skill{"technical": {{Name: "Go", Level: 4}}},
	})

	out := buf.String()
	assert.Contains(t, out, "CV RECORD")
	assert.Contains(t, out, "Dana Okafor")
	assert.Contains(t, out, "Experience entries:   1")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintRecordSummaryNilRecord(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintRecordSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSectionPlan(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).PrintSectionPlan("hybrid", []style.SectionSpec{
		{ID: style.SectionProfile},
		{ID: style.SectionExperience, Limit: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "SECTION PLAN")
	assert.Contains(t, out, "Style: hybrid")
	assert.Contains(t, out, "1. profile (all)")
	assert.Contains(t, out, "2. experience (first 5)")
}

func TestPrintMetricsSummary(t *testing.T) {
	var buf bytes.Buffer
	cache := types.NewMetricsCache()
	cache.Profile = &types.ProfileMetrics{Citations: 312, HIndex: 9, I10Index: 8}
	cache.Publications["Consensus in the classroom"] = types.PublicationMetrics{Citations: 42}

	NewPrinter(&buf).PrintMetricsSummary(cache)

	out := buf.String()
	assert.Contains(t, out, "PUBLICATION METRICS")
	assert.Contains(t, out, "Citations: 312")
	assert.Contains(t, out, "h-index:   9")
	assert.Contains(t, out, "Cached publications: 1")
	require.Contains(t, out, "Consensus in the classroom: 42")
}
