package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkedInExportHTML = `<html><body>
<h1>Dana Okafor</h1>
<section>
  <h2>About</h2>
  <p>Educator and researcher focused on distributed systems.</p>
</section>
<section>
  <h2>Experience</h2>
  <div class="entry">
    <h3>Senior Lecturer</h3>
    <h4>Strathmore University</h4>
    <span class="date-range">2018 - Present</span>
    <p>Teaching distributed systems.</p>
    <p>Supervising postgraduate research.</p>
  </div>
  <div class="entry">
    <h3>Lecturer</h3>
    <h4>Moi University</h4>
    <span class="date-range">2014 - 2018</span>
  </div>
</section>
<section>
  <h2>Education</h2>
  <div class="entry">
    <h3>University of Nairobi</h3>
    <h4>PhD Computer Science</h4>
    <span class="date-range">2010 - 2014</span>
  </div>
</section>
<section>
  <h2>Skills</h2>
  <ul>
    <li>Go</li>
    <li>Distributed Systems</li>
  </ul>
</section>
</body></html>`

func TestImportLinkedIn(t *testing.T) {
	record, err := ImportLinkedIn(strings.NewReader(linkedInExportHTML))
	require.NoError(t, err)

	assert.Equal(t, "Dana Okafor", record.PersonalInfo.Name)
	assert.Equal(t, "Educator and researcher focused on distributed systems.", record.Profile.Summary)

	require.Len(t, record.WorkExperience, 2)
	first := record.WorkExperience[0]
	assert.Equal(t, "Senior Lecturer", first.Position)
	assert.Equal(t, "Strathmore University", first.Company)
	assert.Equal(t, "2018 - Present", first.Period)
	assert.Equal(t, []string{"Teaching distributed systems.", "Supervising postgraduate research."}, first.Responsibilities)

	second := record.WorkExperience[1]
	assert.Equal(t, []string{"Lecturer"}, second.Responsibilities, "position stands in when the export has no bullets")

	require.Len(t, record.Education, 1)
	assert.Equal(t, "University of Nairobi", record.Education[0].Institution)
	assert.Equal(t, "PhD Computer Science", record.Education[0].Degree)

	require.Len(t, record.Skills["technical"], 2)
	assert.Equal(t, "Go", record.Skills["technical"][0].Name)
	assert.Equal(t, 3, record.Skills["technical"][0].Level)
}

func TestImportLinkedInEmptyDocument(t *testing.T) {
	record, err := ImportLinkedIn(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, record.PersonalInfo.Name)
	assert.Empty(t, record.WorkExperience)
	assert.Empty(t, record.Education)
}
