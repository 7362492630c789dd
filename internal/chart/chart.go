// Package chart renders the skills section as a proficiency chart in a
// standalone HTML file.
package chart

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jonathan/cv-manager/internal/types"
)

// Render writes a horizontal bar chart of every skill's 1-5 proficiency
// level, one series per category. Categories and skills keep a
// deterministic order: categories sorted, skills in record order.
func Render(record *types.CVRecord, w io.Writer) error {
	if len(record.Skills) == 0 {
		return fmt.Errorf("record has no skills to chart")
	}

	categories := make([]string, 0, len(record.Skills))
	for category := range record.Skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var names []string
	levelsByCategory := make(map[string][]opts.BarData, len(record.Skills))
	for _, category := range categories {
		for _, skill := range record.Skills[category] {
			names = append(names, skill.Name)
			for _, other := range categories {
				value := interface{}(nil)
				if other == category {
					value = skill.Level
				}
				levelsByCategory[other] = append(levelsByCategory[other], opts.BarData{Value: value})
			}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s - Skill Proficiency", record.PersonalInfo.Name),
			Subtitle: "Self-assessed level, 1-5",
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Skill Proficiency"}),
	)
	bar.SetXAxis(names)
	for _, category := range categories {
		bar.AddSeries(category, levelsByCategory[category])
	}
	bar.XYReversal()

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render skills chart: %w", err)
	}
	return nil
}

// RenderFile renders the chart to path, overwriting silently.
func RenderFile(record *types.CVRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Render(record, f)
}
