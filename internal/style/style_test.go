package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/types"
)

func fullRecord() *types.CVRecord {
	return &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "Dana Okafor", Title: "Senior Lecturer"},
		Profile:      types.Profile{Summary: "Educator and researcher.", Expertise: []string{"Distributed systems"}},
		Education: []types.Education{
			{Institution: "University of Nairobi", Degree: "PhD Computer Science", Period: "2010 - 2014"},
		},
		WorkExperience: []types.Experience{
			{Company: "Strathmore University", Position: "Senior Lecturer", Period: "2018 - Present", Responsibilities: []string{"Teaching"}},
		},
		Skills: map[string][]types.Skill{
			"technical": {{Name: "Go", Level: 4}},
		},
		Certifications: []types.Certification{
			{Name: "PGCHE", Issuer: "HEA", Year: 2016},
		},
		Publications: types.Publications{
			ConferenceProceedings: []types.Publication{
				{Authors: []string{"Okafor, D."}, Year: 2021, Title: "Consensus in the classroom"},
			},
		},
		Memberships: []types.Membership{{Organization: "ACM"}},
		Referees:    []types.Referee{{Name: "Prof. A. Mwangi", Position: "Dean"}},
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"research is valid", "research", false},
		{"industry is valid", "industry", false},
		{"academic is valid", "academic", false},
		{"technical is valid", "technical", false},
		{"hybrid is valid", "hybrid", false},
		{"unknown tag rejected", "creative", true},
		{"empty tag rejected", "", true},
		{"case sensitive", "Research", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof, err := Lookup(tt.tag)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tag, prof.Tag)
			assert.NotEmpty(t, prof.SectionOrder)
		})
	}
}

func TestSelectDefaultOrder(t *testing.T) {
	record := fullRecord()

	plan, err := Select("research", record, Overrides{})
	require.NoError(t, err)

	got := make([]SectionID, len(plan))
	for i, spec := range plan {
		got[i] = spec.ID
	}
	assert.Equal(t, []SectionID{
		SectionProfile, SectionEducation, SectionExperience, SectionSkills,
		SectionCertifications, SectionPublications, SectionMemberships, SectionReferees,
	}, got)
}

func TestSelectDeterministic(t *testing.T) {
	record := fullRecord()
	ov := Overrides{Limits: map[SectionID]int{SectionExperience: 2}}

	first, err := Select("hybrid", record, ov)
	require.NoError(t, err)
	second, err := Select("hybrid", record, ov)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelectExplicitSections(t *testing.T) {
	record := fullRecord()

	plan, err := Select("research", record, Overrides{
		Sections: []SectionID{SectionSkills, SectionProfile},
	})
	require.NoError(t, err)

	require.Len(t, plan, 2)
	assert.Equal(t, SectionSkills, plan[0].ID)
	assert.Equal(t, SectionProfile, plan[1].ID)
}

func TestSelectExplicitSectionsDropsEmpty(t *testing.T) {
	record := fullRecord()
	record.Referees = nil

	plan, err := Select("research", record, Overrides{
		Sections: []SectionID{SectionProfile, SectionReferees},
	})
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, SectionProfile, plan[0].ID)
}

func TestSelectLimitOverrides(t *testing.T) {
	record := fullRecord()

	plan, err := Select("hybrid", record, Overrides{
		Limits: map[SectionID]int{SectionExperience: 2},
	})
	require.NoError(t, err)

	limits := map[SectionID]int{}
	for _, spec := range plan {
		limits[spec.ID] = spec.Limit
	}
	// Overridden section takes the override; others keep style defaults.
	assert.Equal(t, 2, limits[SectionExperience])
	assert.Equal(t, 10, limits[SectionPublications])
}

func TestSelectInvalidStyle(t *testing.T) {
	_, err := Select("nope", fullRecord(), Overrides{})
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

func TestParseSectionIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []SectionID
		wantErr bool
	}{
		{"empty input", nil, []SectionID{}, false},
		{"valid names", []string{"profile", "skills"}, []SectionID{SectionProfile, SectionSkills}, false},
		{"unknown name rejected", []string{"profile", "hobbies"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSectionIDs(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
