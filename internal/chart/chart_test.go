package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/types"
)

func chartRecord() *types.CVRecord {
	return &types.CVRecord{
		PersonalInfo: types.PersonalInfo{Name: "Dana Okafor"},
		Skills: map[string][]types.Skill{
			"technical":   {{Name: "Go", Level: 4}, {Name: "Python", Level: 5}},
			"pedagogical": {{Name: "Assessment design", Level: 4}},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(chartRecord(), &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Dana Okafor - Skill Proficiency")
	assert.Contains(t, html, "Go")
	assert.Contains(t, html, "Assessment design")
	assert.Contains(t, html, "pedagogical")
	assert.Contains(t, html, "technical")
}

func TestRenderNoSkills(t *testing.T) {
	record := &types.CVRecord{PersonalInfo: types.PersonalInfo{Name: "Dana Okafor"}}

	err := Render(record, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRenderCategoryOrderIsStable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(chartRecord(), &buf))

	html := buf.String()
	// Categories render sorted, so pedagogical precedes technical
	// regardless of map iteration order.
	assert.Less(t, bytes.Index([]byte(html), []byte("pedagogical")), bytes.Index([]byte(html), []byte("technical")))
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills_chart.html")

	require.NoError(t, RenderFile(chartRecord(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
