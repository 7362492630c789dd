package importer

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-manager/internal/types"
)

// Conflict records a field where base and overlay disagree. The base
// value wins; the overlay value is reported for manual resolution.
type Conflict struct {
	Field   string
	Base    string
	Overlay string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: kept %q, overlay had %q", c.Field, c.Base, c.Overlay)
}

// Merge folds an overlay record (typically an import) into a copy of
// the base record. Empty base fields take the overlay value; non-empty
// differing scalars keep the base value and report a conflict. List
// entries are matched by natural key (company+position,
// institution+degree, publication title); overlay-only entries are
// appended.
func Merge(base, overlay *types.CVRecord) (*types.CVRecord, []Conflict) {
	merged := *base
	var conflicts []Conflict

	mergeString := func(field string, dst *string, src string) {
		if src == "" {
			return
		}
		if *dst == "" {
			*dst = src
			return
		}
		if *dst != src {
			conflicts = append(conflicts, Conflict{Field: field, Base: *dst, Overlay: src})
		}
	}

	mergeString("personal_info.name", &merged.PersonalInfo.Name, overlay.PersonalInfo.Name)
	mergeString("personal_info.title", &merged.PersonalInfo.Title, overlay.PersonalInfo.Title)
	mergeString("personal_info.email", &merged.PersonalInfo.Email, overlay.PersonalInfo.Email)
	mergeString("personal_info.phone", &merged.PersonalInfo.Phone, overlay.PersonalInfo.Phone)
	mergeString("personal_info.location", &merged.PersonalInfo.Location, overlay.PersonalInfo.Location)
	mergeString("profile.summary", &merged.Profile.Summary, overlay.Profile.Summary)

	seenWebsites := make(map[string]bool, len(merged.PersonalInfo.Websites))
	for _, site := range merged.PersonalInfo.Websites {
		seenWebsites[site] = true
	}
	for _, site := range overlay.PersonalInfo.Websites {
		if !seenWebsites[site] {
			merged.PersonalInfo.Websites = append(merged.PersonalInfo.Websites, site)
			seenWebsites[site] = true
		}
	}

	// Experience keyed by company+position.
	expKeys := make(map[string]bool, len(merged.WorkExperience))
	for _, exp := range merged.WorkExperience {
		expKeys[experienceKey(exp)] = true
	}
	for _, exp := range overlay.WorkExperience {
		if !expKeys[experienceKey(exp)] {
			merged.WorkExperience = append(merged.WorkExperience, exp)
		}
	}

	// Education keyed by institution+degree.
	eduKeys := make(map[string]bool, len(merged.Education))
	for _, edu := range merged.Education {
		eduKeys[educationKey(edu)] = true
	}
	for _, edu := range overlay.Education {
		if !eduKeys[educationKey(edu)] {
			merged.Education = append(merged.Education, edu)
		}
	}

	// Publications keyed by title within each group.
	merged.Publications.BookChapters = mergePublications(merged.Publications.BookChapters, overlay.Publications.BookChapters)
	merged.Publications.ConferenceProceedings = mergePublications(merged.Publications.ConferenceProceedings, overlay.Publications.ConferenceProceedings)
	merged.Publications.JournalArticles = mergePublications(merged.Publications.JournalArticles, overlay.Publications.JournalArticles)
	merged.Publications.Other = mergePublications(merged.Publications.Other, overlay.Publications.Other)

	// Skills: union per category, keyed by name.
	if len(overlay.Skills) > 0 {
		if merged.Skills == nil {
			merged.Skills = map[string][]types.Skill{}
		}
		for category, skills := range overlay.Skills {
			names := make(map[string]bool, len(merged.Skills[category]))
			for _, skill := range merged.Skills[category] {
				names[strings.ToLower(skill.Name)] = true
			}
			for _, skill := range skills {
				if !names[strings.ToLower(skill.Name)] {
					merged.Skills[category] = append(merged.Skills[category], skill)
				}
			}
		}
	}

	return &merged, conflicts
}

func experienceKey(exp types.Experience) string {
	return strings.ToLower(exp.Company + "_" + exp.Position)
}

func educationKey(edu types.Education) string {
	return strings.ToLower(edu.Institution + "_" + edu.Degree)
}

func mergePublications(base, overlay []types.Publication) []types.Publication {
	titles := make(map[string]bool, len(base))
	for _, pub := range base {
		titles[strings.ToLower(pub.Title)] = true
	}
	for _, pub := range overlay {
		if !titles[strings.ToLower(pub.Title)] {
			base = append(base, pub)
		}
	}
	return base
}
