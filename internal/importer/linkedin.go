package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/cv-manager/internal/types"
)

// ImportLinkedIn parses a LinkedIn profile HTML export into a partial
// CV record. The export groups content under sections whose headers
// name them ("Summary", "Experience", "Education", "Skills"); entries
// inside a section are list items or entry divs. Fields the export
// does not carry stay empty and are filled during merge.
func ImportLinkedIn(r io.Reader) (*types.CVRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LinkedIn export: %w", err)
	}

	record := &types.CVRecord{
		Skills: map[string][]types.Skill{},
	}

	record.PersonalInfo.Name = strings.TrimSpace(doc.Find("h1").First().Text())

	doc.Find("section").Each(func(_ int, section *goquery.Selection) {
		header := strings.TrimSpace(section.Find("h2").First().Text())
		switch strings.ToLower(header) {
		case "summary", "about":
			record.Profile.Summary = strings.TrimSpace(section.Find("p").First().Text())
		case "experience":
			section.Find(".entry, li").Each(func(_ int, entry *goquery.Selection) {
				exp := parseLinkedInExperience(entry)
				if exp != nil {
					record.WorkExperience = append(record.WorkExperience, *exp)
				}
			})
		case "education":
			section.Find(".entry, li").Each(func(_ int, entry *goquery.Selection) {
				edu := parseLinkedInEducation(entry)
				if edu != nil {
					record.Education = append(record.Education, *edu)
				}
			})
		case "skills", "top skills":
			section.Find("li").Each(func(_ int, item *goquery.Selection) {
				name := strings.TrimSpace(item.Text())
				if name != "" {
					record.Skills["technical"] = append(record.Skills["technical"], types.Skill{Name: name, Level: 3})
				}
			})
		}
	})

	return record, nil
}

func parseLinkedInExperience(entry *goquery.Selection) *types.Experience {
	position := strings.TrimSpace(entry.Find("h3").First().Text())
	company := strings.TrimSpace(entry.Find("h4").First().Text())
	period := strings.TrimSpace(entry.Find(".date-range, time").First().Text())
	if position == "" && company == "" {
		return nil
	}
	var responsibilities []string
	entry.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text != "" {
			responsibilities = append(responsibilities, text)
		}
	})
	if len(responsibilities) == 0 {
		responsibilities = []string{position}
	}
	return &types.Experience{
		Company:          company,
		Position:         position,
		Period:           period,
		Responsibilities: responsibilities,
	}
}

func parseLinkedInEducation(entry *goquery.Selection) *types.Education {
	institution := strings.TrimSpace(entry.Find("h3").First().Text())
	degree := strings.TrimSpace(entry.Find("h4").First().Text())
	period := strings.TrimSpace(entry.Find(".date-range, time").First().Text())
	if institution == "" {
		return nil
	}
	return &types.Education{
		Institution: institution,
		Degree:      degree,
		Period:      period,
	}
}
