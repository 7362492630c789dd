// Package style defines the closed set of CV style profiles and the
// section selection logic that turns a style plus per-call overrides
// into an ordered section plan.
package style

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/cv-manager/internal/types"
)

// ErrInvalidStyle indicates an unknown style tag.
var ErrInvalidStyle = errors.New("invalid style")

// SectionID identifies a CV section. These are the stable identifiers
// referenced by section plans and by the --sections flag.
type SectionID string

// Known section identifiers.
const (
	SectionProfile        SectionID = "profile"
	SectionEducation      SectionID = "education"
	SectionExperience     SectionID = "experience"
	SectionSkills         SectionID = "skills"
	SectionCertifications SectionID = "certifications"
	SectionPublications   SectionID = "publications"
	SectionMemberships    SectionID = "memberships"
	SectionReferees       SectionID = "referees"
)

// Profile is a named style configuration. It is immutable at render
// time; the package-level table is the only source of instances.
type Profile struct {
	Tag string
	// SectionOrder is the default section order for this style.
	SectionOrder []SectionID
	// Limits holds default per-section entry limits. A missing key or
	// zero value means unbounded.
	Limits map[SectionID]int
	// SkillCategoryOrder lists known skill categories in the order this
	// audience expects them. Categories not listed render afterwards in
	// alphabetical order.
	SkillCategoryOrder []string
	// ShowExpertise controls whether the profile section includes the
	// key-expertise bullet list.
	ShowExpertise bool
}

var profiles = map[string]Profile{
	"research": {
		Tag: "research",
		SectionOrder: []SectionID{
			SectionProfile, SectionEducation, SectionExperience, SectionSkills,
			SectionCertifications, SectionPublications, SectionMemberships, SectionReferees,
		},
		SkillCategoryOrder: []string{"research", "pedagogical", "technical"},
		ShowExpertise:      true,
	},
	"academic": {
		Tag: "academic",
		SectionOrder: []SectionID{
			SectionProfile, SectionEducation, SectionExperience, SectionSkills,
			SectionCertifications, SectionPublications, SectionMemberships, SectionReferees,
		},
		SkillCategoryOrder: []string{"pedagogical", "research", "technical"},
		ShowExpertise:      true,
	},
	"industry": {
		Tag: "industry",
		SectionOrder: []SectionID{
			SectionProfile, SectionExperience, SectionSkills,
			SectionCertifications, SectionMemberships,
		},
		SkillCategoryOrder: []string{"technical", "pedagogical", "research"},
	},
	"technical": {
		Tag: "technical",
		SectionOrder: []SectionID{
			SectionProfile, SectionSkills, SectionExperience, SectionCertifications,
		},
		SkillCategoryOrder: []string{"technical", "research", "pedagogical"},
	},
	"hybrid": {
		Tag: "hybrid",
		SectionOrder: []SectionID{
			SectionProfile, SectionExperience, SectionPublications, SectionSkills,
			SectionCertifications, SectionEducation,
		},
		Limits: map[SectionID]int{
			SectionExperience:   5,
			SectionPublications: 10,
		},
		SkillCategoryOrder: []string{"technical", "research", "pedagogical"},
	},
}

// Tags returns all valid style tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(profiles))
	for tag := range profiles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Lookup resolves a style tag to its profile. Unknown tags return
// ErrInvalidStyle.
func Lookup(tag string) (Profile, error) {
	p, ok := profiles[tag]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidStyle, tag, Tags())
	}
	return p, nil
}

// Overrides carries per-invocation adjustments to a style's defaults.
type Overrides struct {
	// Sections, if non-empty, replaces the style's default section
	// order. Only sections present in the CV record are kept.
	Sections []SectionID
	// Limits replaces the default limit for the named sections only.
	Limits map[SectionID]int
}

// SectionSpec is one entry of a resolved section plan. Limit 0 means
// unbounded.
type SectionSpec struct {
	ID    SectionID
	Limit int
}

// Select resolves a style tag and overrides into an ordered section
// plan. Identical inputs always produce identical output.
func Select(tag string, record *types.CVRecord, ov Overrides) ([]SectionSpec, error) {
	prof, err := Lookup(tag)
	if err != nil {
		return nil, err
	}

	order := prof.SectionOrder
	if len(ov.Sections) > 0 {
		order = make([]SectionID, 0, len(ov.Sections))
		for _, id := range ov.Sections {
			if recordHasSection(record, id) {
				order = append(order, id)
			}
		}
	}

	plan := make([]SectionSpec, 0, len(order))
	for _, id := range order {
		limit := prof.Limits[id]
		if override, ok := ov.Limits[id]; ok {
			limit = override
		}
		plan = append(plan, SectionSpec{ID: id, Limit: limit})
	}
	return plan, nil
}

// recordHasSection reports whether the record carries any content for
// the given section. Missing and empty sections are treated alike.
func recordHasSection(record *types.CVRecord, id SectionID) bool {
	if record == nil {
		return false
	}
	switch id {
	case SectionProfile:
		return record.Profile.Summary != "" || len(record.Profile.Expertise) > 0
	case SectionEducation:
		return len(record.Education) > 0
	case SectionExperience:
		return len(record.WorkExperience) > 0
	case SectionSkills:
		return len(record.Skills) > 0
	case SectionCertifications:
		return len(record.Certifications) > 0
	case SectionPublications:
		return len(record.Publications.AllPublications()) > 0
	case SectionMemberships:
		return len(record.Memberships) > 0
	case SectionReferees:
		return len(record.Referees) > 0
	default:
		return false
	}
}

// ParseSectionIDs converts raw section names into SectionIDs, rejecting
// unknown names so typos fail eagerly rather than silently dropping a
// section.
func ParseSectionIDs(names []string) ([]SectionID, error) {
	known := map[SectionID]bool{
		SectionProfile: true, SectionEducation: true, SectionExperience: true,
		SectionSkills: true, SectionCertifications: true, SectionPublications: true,
		SectionMemberships: true, SectionReferees: true,
	}
	out := make([]SectionID, 0, len(names))
	for _, name := range names {
		id := SectionID(name)
		if !known[id] {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		out = append(out, id)
	}
	return out, nil
}
