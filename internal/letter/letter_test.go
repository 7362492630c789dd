package letter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/types"
)

func letterRecord() *types.CVRecord {
	return &types.CVRecord{
		PersonalInfo: types.PersonalInfo{
			Name:  "Dana Okafor",
			Title: "Senior Lecturer",
			Email: "dana@example.org",
			Phone: "+254 700 000000",
		},
		WorkExperience: []types.Experience{
			{Company: "Strathmore University", Position: "Senior Lecturer", Period: "2018 - Present", Responsibilities: []string{"Teaching"}},
		},
	}
}

func academicFields() map[string]string {
	return map[string]string{
		"recipient_name":       "Prof. J. Smith",
		"recipient_title":      "Head of Department",
		"institution":          "University of Cape Town",
		"address":              "Rondebosch, Cape Town",
		"position":             "Associate Professor",
		"highest_degree":       "PhD",
		"degree_field":         "Computer Science",
		"years_experience":     "10",
		"primary_expertise":    "distributed systems",
		"custom_paragraph_1":   "First paragraph.",
		"custom_paragraph_2":   "Second paragraph.",
		"custom_paragraph_3":   "Third paragraph.",
		"research_focus":       "consensus protocols",
		"notable_publications": "two book chapters",
		"key_achievement_1":    "built the systems curriculum",
		"key_achievement_2":    "I supervise six postgraduate students",
		"why_institution":      "of its systems research group",
		"expertise_1":          "distributed systems",
		"expertise_2":          "teaching",
		"expertise_3":          "curriculum design",
	}
}

func TestTemplates(t *testing.T) {
	names := Templates()
	assert.Equal(t, []string{"academic", "consulting", "industry", "research_grant"}, names)
}

func TestDefaultFields(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	fields := DefaultFields(letterRecord(), now)

	assert.Equal(t, "5 March 2026", fields["date"])
	assert.Equal(t, "Dana Okafor", fields["name"])
	assert.Equal(t, "Dana Okafor", fields["signature"])
	assert.Equal(t, "Senior Lecturer", fields["current_title"])
	assert.Equal(t, "Strathmore University", fields["current_institution"])
	assert.Equal(t, "Hiring Committee", fields["salutation"])
}

func TestDefaultFieldsNoExperience(t *testing.T) {
	record := letterRecord()
	record.WorkExperience = nil

	fields := DefaultFields(record, time.Now())

	_, hasPosition := fields["current_position"]
	assert.False(t, hasPosition)
}

func TestGenerateAcademicLetter(t *testing.T) {
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	text, err := Generate("academic", letterRecord(), academicFields(), now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "5 March 2026\n"))
	assert.Contains(t, text, "Dear Hiring Committee,")
	assert.Contains(t, text, "RE: Application for Associate Professor")
	assert.Contains(t, text, "my current position at Strathmore University")
	assert.Contains(t, text, "Dana Okafor\nSenior Lecturer\ndana@example.org")
}

func TestGenerateCallerFieldsWinOverDefaults(t *testing.T) {
	fields := academicFields()
	fields["salutation"] = "Prof. Smith"

	text, err := Generate("academic", letterRecord(), fields, time.Now())
	require.NoError(t, err)

	assert.Contains(t, text, "Dear Prof. Smith,")
	assert.NotContains(t, text, "Dear Hiring Committee,")
}

func TestGenerateMissingFieldFails(t *testing.T) {
	fields := academicFields()
	delete(fields, "research_focus")

	_, err := Generate("academic", letterRecord(), fields, time.Now())

	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
}

func TestGenerateUnknownTemplate(t *testing.T) {
	_, err := Generate("poem", letterRecord(), nil, time.Now())

	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), "academic", "error lists the valid templates")
}
