// Package store loads, validates, and persists the CV data file. The
// file is read in full at the start of an operation and written in full
// at the end; there is no partial load and no concurrent writer support.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/cv-manager/internal/types"
)

//go:embed schema/cv_record.schema.json
var cvRecordSchema []byte

var validate = validator.New()

// Load reads the CV data file at path, validates it against the record
// schema, and unmarshals it. Schema violations return a
// *MalformedDataError carrying every field failure.
func Load(path string) (*types.CVRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV data file: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(cvRecordSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Invalid JSON never reaches schema evaluation.
		return nil, &MalformedDataError{
			Path:   path,
			Errors: []FieldError{{Field: "(document)", Message: err.Error()}},
		}
	}

	if !result.Valid() {
		fieldErrors := make([]FieldError, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   resultError.Field(),
				Message: resultError.Description(),
			})
		}
		return nil, &MalformedDataError{Path: path, Errors: fieldErrors}
	}

	var record types.CVRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &MalformedDataError{
			Path:   path,
			Errors: []FieldError{{Field: "(document)", Message: err.Error()}},
		}
	}
	return &record, nil
}

// Save writes the full record to path in canonical form: two-space
// indent, sorted object keys, trailing newline. Loading then saving a
// record yields byte-identical persisted state.
func Save(path string, record *types.CVRecord) error {
	normalize(record)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal CV record: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write CV data file: %w", err)
	}
	return nil
}

// normalize replaces nil collections with empty ones so required fields
// persist as [] / {} rather than null, which the schema rejects.
func normalize(record *types.CVRecord) {
	if record.Education == nil {
		record.Education = []types.Education{}
	}
	if record.WorkExperience == nil {
		record.WorkExperience = []types.Experience{}
	}
	if record.Skills == nil {
		record.Skills = map[string][]types.Skill{}
	}
	if record.Certifications == nil {
		record.Certifications = []types.Certification{}
	}
	if record.Publications.BookChapters == nil {
		record.Publications.BookChapters = []types.Publication{}
	}
	if record.Publications.ConferenceProceedings == nil {
		record.Publications.ConferenceProceedings = []types.Publication{}
	}
}

// AddExperience validates and prepends a work experience entry so the
// most recent entry renders first.
func AddExperience(record *types.CVRecord, entry types.Experience) error {
	if err := validate.Struct(entry); err != nil {
		return &EntryError{Section: "experience", Cause: err}
	}
	record.WorkExperience = append([]types.Experience{entry}, record.WorkExperience...)
	return nil
}

// PublicationGroup names a group within the publications section.
type PublicationGroup string

// Valid publication groups.
const (
	GroupBookChapters          PublicationGroup = "book_chapters"
	GroupConferenceProceedings PublicationGroup = "conference_proceedings"
	GroupJournalArticles       PublicationGroup = "journal_articles"
	GroupOther                 PublicationGroup = "other"
)

// AddPublication validates and prepends a publication entry to the
// named group.
func AddPublication(record *types.CVRecord, group PublicationGroup, entry types.Publication) error {
	if err := validate.Struct(entry); err != nil {
		return &EntryError{Section: "publications", Cause: err}
	}
	switch group {
	case GroupBookChapters:
		record.Publications.BookChapters = append([]types.Publication{entry}, record.Publications.BookChapters...)
	case GroupConferenceProceedings:
		record.Publications.ConferenceProceedings = append([]types.Publication{entry}, record.Publications.ConferenceProceedings...)
	case GroupJournalArticles:
		record.Publications.JournalArticles = append([]types.Publication{entry}, record.Publications.JournalArticles...)
	case GroupOther:
		record.Publications.Other = append([]types.Publication{entry}, record.Publications.Other...)
	default:
		return &EntryError{Section: "publications", Cause: fmt.Errorf("unknown publication group %q", group)}
	}
	return nil
}

// AddCertification validates and prepends a certification entry.
func AddCertification(record *types.CVRecord, entry types.Certification) error {
	if err := validate.Struct(entry); err != nil {
		return &EntryError{Section: "certifications", Cause: err}
	}
	record.Certifications = append([]types.Certification{entry}, record.Certifications...)
	return nil
}
