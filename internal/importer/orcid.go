// Package importer pulls profile data from external sources (ORCID
// public API, LinkedIn profile export) into CV records, and merges
// imported records into the canonical data file.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-manager/internal/types"
)

// DefaultORCIDBaseURL is the ORCID public API endpoint.
const DefaultORCIDBaseURL = "https://pub.orcid.org/v3.0"

// ORCIDClient fetches a public ORCID profile. BaseURL is overridable
// for tests.
type ORCIDClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewORCIDClient returns a client against the production endpoint.
func NewORCIDClient() *ORCIDClient {
	return &ORCIDClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultORCIDBaseURL,
	}
}

// ORCID API payload fragments. Only the fields we map are declared.

type orcidValue struct {
	Value string `json:"value"`
}

type orcidPerson struct {
	Name struct {
		GivenNames orcidValue `json:"given-names"`
		FamilyName orcidValue `json:"family-name"`
	} `json:"name"`
	Emails struct {
		Email []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		} `json:"email"`
	} `json:"emails"`
	ResearcherURLs struct {
		ResearcherURL []struct {
			URL orcidValue `json:"url"`
		} `json:"researcher-url"`
	} `json:"researcher-urls"`
}

type orcidDate struct {
	Year *orcidValue `json:"year"`
}

type orcidAffiliationSummary struct {
	Organization struct {
		Name string `json:"name"`
	} `json:"organization"`
	RoleTitle      string     `json:"role-title"`
	DepartmentName string     `json:"department-name"`
	StartDate      *orcidDate `json:"start-date"`
	EndDate        *orcidDate `json:"end-date"`
}

type orcidAffiliations struct {
	AffiliationGroup []struct {
		Summaries []map[string]orcidAffiliationSummary `json:"summaries"`
	} `json:"affiliation-group"`
}

type orcidWorks struct {
	Group []struct {
		WorkSummary []struct {
			Title struct {
				Title orcidValue `json:"title"`
			} `json:"title"`
			Type            string     `json:"type"`
			PublicationDate *orcidDate `json:"publication-date"`
			ExternalIDs     struct {
				ExternalID []struct {
					Type  string `json:"external-id-type"`
					Value string `json:"external-id-value"`
				} `json:"external-id"`
			} `json:"external-ids"`
		} `json:"work-summary"`
	} `json:"group"`
}

func (c *ORCIDClient) fetch(ctx context.Context, orcidID, endpoint string, out any) error {
	url := fmt.Sprintf("%s/%s/%s", c.BaseURL, orcidID, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create ORCID request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("ORCID request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ORCID %s returned status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ORCID %s response: %w", endpoint, err)
	}
	return nil
}

// Import fetches the person, works, educations, and employments
// endpoints for the given ORCID iD and maps them into a CV record. The
// four endpoint fetches run concurrently; any failure aborts the
// import (no partial record).
func (c *ORCIDClient) Import(ctx context.Context, orcidID string) (*types.CVRecord, error) {
	var (
		person      orcidPerson
		works       orcidWorks
		educations  orcidAffiliations
		employments orcidAffiliations
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.fetch(gctx, orcidID, "person", &person) })
	g.Go(func() error { return c.fetch(gctx, orcidID, "works", &works) })
	g.Go(func() error { return c.fetch(gctx, orcidID, "educations", &educations) })
	g.Go(func() error { return c.fetch(gctx, orcidID, "employments", &employments) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	record := &types.CVRecord{
		Skills: map[string][]types.Skill{},
	}

	name := strings.TrimSpace(person.Name.GivenNames.Value + " " + person.Name.FamilyName.Value)
	record.PersonalInfo.Name = name
	for _, email := range person.Emails.Email {
		if email.Primary {
			record.PersonalInfo.Email = email.Email
			break
		}
	}
	for _, ru := range person.ResearcherURLs.ResearcherURL {
		if ru.URL.Value != "" {
			record.PersonalInfo.Websites = append(record.PersonalInfo.Websites, ru.URL.Value)
		}
	}

	for _, group := range educations.AffiliationGroup {
		for _, summaries := range group.Summaries {
			summary, ok := summaries["education-summary"]
			if !ok {
				continue
			}
			record.Education = append(record.Education, types.Education{
				Institution: summary.Organization.Name,
				Degree:      summary.RoleTitle,
				Period:      affiliationPeriod(summary),
				Description: summary.DepartmentName,
			})
		}
	}

	for _, group := range employments.AffiliationGroup {
		for _, summaries := range group.Summaries {
			summary, ok := summaries["employment-summary"]
			if !ok {
				continue
			}
			responsibilities := []string{summary.DepartmentName}
			if summary.DepartmentName == "" {
				responsibilities = []string{summary.RoleTitle}
			}
			record.WorkExperience = append(record.WorkExperience, types.Experience{
				Company:          summary.Organization.Name,
				Position:         summary.RoleTitle,
				Period:           affiliationPeriod(summary),
				Responsibilities: responsibilities,
			})
		}
	}

	// Work summaries carry no contributor list; the profile owner is
	// recorded as the author until a manual edit adds co-authors.
	for _, group := range works.Group {
		if len(group.WorkSummary) == 0 {
			continue
		}
		summary := group.WorkSummary[0]
		pub := types.Publication{
			Title:   summary.Title.Title.Value,
			Authors: []string{name},
		}
		if summary.PublicationDate != nil && summary.PublicationDate.Year != nil {
			fmt.Sscanf(summary.PublicationDate.Year.Value, "%d", &pub.Year)
		}
		for _, eid := range summary.ExternalIDs.ExternalID {
			if eid.Type == "doi" {
				pub.DOI = eid.Value
				break
			}
		}
		workType := strings.ToLower(strings.ReplaceAll(summary.Type, "_", "-"))
		switch {
		case strings.Contains(workType, "conference"):
			record.Publications.ConferenceProceedings = append(record.Publications.ConferenceProceedings, pub)
		case strings.Contains(workType, "book-chapter"):
			record.Publications.BookChapters = append(record.Publications.BookChapters, pub)
		case strings.Contains(workType, "journal-article"):
			record.Publications.JournalArticles = append(record.Publications.JournalArticles, pub)
		default:
			record.Publications.Other = append(record.Publications.Other, pub)
		}
	}

	return record, nil
}

func affiliationPeriod(summary orcidAffiliationSummary) string {
	start := ""
	if summary.StartDate != nil && summary.StartDate.Year != nil {
		start = summary.StartDate.Year.Value
	}
	end := "Present"
	if summary.EndDate != nil && summary.EndDate.Year != nil {
		end = summary.EndDate.Year.Value
	}
	return fmt.Sprintf("%s - %s", start, end)
}
