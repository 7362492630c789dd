package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/types"
)

func TestMergeScalarConflictKeepsBase(t *testing.T) {
	base := &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "Dana Okafor", Email: "dana@example.org"},
	}
	overlay := &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "D. Okafor", Phone: "+254 700 000000"},
	}

	merged, conflicts := Merge(base, overlay)

	assert.Equal(t, "Dana Okafor", merged.PersonalInfo.Name, "base wins conflicts")
	assert.Equal(t, "+254 700 000000", merged.PersonalInfo.Phone, "empty base fields take the overlay value")
	assert.Equal(t, "dana@example.org", merged.PersonalInfo.Email)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "personal_info.name", conflicts[0].Field)
	assert.Equal(t, "Dana Okafor", conflicts[0].Base)
	assert.Equal(t, "D. Okafor", conflicts[0].Overlay)
}

func TestMergeExperienceByKey(t *testing.T) {
	base := &types.CVRecord{
		WorkExperience: []types.Experience{
			{Company: "Strathmore University", Position: "Senior Lecturer", Period: "2018 - Present", Responsibilities: []string{"Teaching"}},
		},
	}
	overlay := &types.CVRecord{
		WorkExperience: []types.Experience{
			{Company: "strathmore university", Position: "senior lecturer", Period: "2018 -", Responsibilities: []string{"x"}},
			{Company: "Moi University", Position: "Lecturer", Period: "2014 - 2018", Responsibilities: []string{"Teaching"}},
		},
	}

	merged, _ := Merge(base, overlay)

	require.Len(t, merged.WorkExperience, 2, "matching company+position is not duplicated")
	assert.Equal(t, "2018 - Present", merged.WorkExperience[0].Period, "base entry kept intact")
	assert.Equal(t, "Moi University", merged.WorkExperience[1].Company)
}

func TestMergePublicationsByTitle(t *testing.T) {
	base := &types.CVRecord{
		Publications: types.Publications{
			ConferenceProceedings: []types.Publication{
				{Authors: []string{"Okafor, D."}, Year: 2021, Title: "Consensus in the classroom", DOI: "10.1000/demo.1"},
			},
		},
	}
	overlay := &types.CVRecord{
		Publications: types.Publications{
			ConferenceProceedings: []types.Publication{
				{Authors: []string{"Dana Okafor"}, Year: 2021, Title: "consensus in the classroom"},
				{Authors: []string{"Dana Okafor"}, Year: 2020, Title: "Raft for undergraduates"},
			},
		},
	}

	merged, _ := Merge(base, overlay)

	require.Len(t, merged.Publications.ConferenceProceedings, 2)
	assert.Equal(t, "10.1000/demo.1", merged.Publications.ConferenceProceedings[0].DOI, "base entry keeps its DOI")
	assert.Equal(t, "Raft for undergraduates", merged.Publications.ConferenceProceedings[1].Title)
}

func TestMergeSkillsUnion(t *testing.T) {
	base := &types.CVRecord{
		Skills: map[string][]types.Skill{
			"technical": {{Name: "Go", Level: 4}},
		},
	}
	overlay := &types.CVRecord{
		Skills: map[string][]types.Skill{
			"technical":   {{Name: "go", Level: 3}, {Name: "Python", Level: 3}},
			"pedagogical": {{Name: "Assessment design", Level: 3}},
		},
	}

	merged, _ := Merge(base, overlay)

	require.Len(t, merged.Skills["technical"], 2, "case-insensitive name match avoids duplicates")
	assert.Equal(t, 4, merged.Skills["technical"][0].Level, "base proficiency kept")
	assert.Len(t, merged.Skills["pedagogical"], 1)
}

func TestMergeIntoEmptyBase(t *testing.T) {
	overlay := &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "Dana Okafor"},
		Education: []types.Education{
			{Institution: "University of Nairobi", Degree: "PhD", Period: "2010 - 2014"},
		},
	}

	merged, conflicts := Merge(&types.CVRecord{}, overlay)

	assert.Empty(t, conflicts)
	assert.Equal(t, "Dana Okafor", merged.PersonalInfo.Name)
	assert.Len(t, merged.Education, 1)
}

func TestMergeWebsitesDeduplicated(t *testing.T) {
	base := &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Websites: []string{"https://a.example.org"}},
	}
	overlay := &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Websites: []string{"https://a.example.org", "https://b.example.org"}},
	}

	merged, _ := Merge(base, overlay)

	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, merged.PersonalInfo.Websites)
}
