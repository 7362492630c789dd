package metrics

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/cv-manager/internal/types"
)

// FetchResult summarizes one FetchAll pass.
type FetchResult struct {
	Fetched int
	Skipped int
	Failed  int
}

// FetchAll walks every publication in the record that carries a DOI,
// fetches its citation count from Crossref, updates the cache, and
// writes the count back into the publication entry. A mandatory delay
// separates consecutive requests. Individual failures are logged and
// counted, never fatal: rendering only consumes previously persisted
// values, so a partial pass is still useful.
func (c *Client) FetchAll(ctx context.Context, record *types.CVRecord, cache *types.MetricsCache) FetchResult {
	var result FetchResult
	first := true

	groups := []*[]types.Publication{
		&record.Publications.BookChapters,
		&record.Publications.ConferenceProceedings,
		&record.Publications.JournalArticles,
		&record.Publications.Other,
	}
	for _, group := range groups {
		for i := range *group {
			pub := &(*group)[i]
			if pub.DOI == "" {
				result.Skipped++
				continue
			}
			if !first {
				c.pause()
			}
			first = false

			citations, err := c.CrossrefCitations(ctx, pub.DOI)
			if err != nil {
				log.Printf("metrics: %s: %v", pub.Title, err)
				result.Failed++
				if errors.Is(err, ErrRateLimited) {
					// The source asked us to stop; abort the pass.
					return result
				}
				continue
			}

			pub.Citations = &citations
			cache.Publications[pub.Title] = types.PublicationMetrics{
				Title:       pub.Title,
				DOI:         pub.DOI,
				Citations:   citations,
				Source:      "crossref",
				LastUpdated: time.Now().UTC().Format(time.RFC3339),
			}
			result.Fetched++
		}
	}
	return result
}

// FetchOne fetches the citation count for a single publication title
// present in the record. Titles without a DOI return ErrNotFound since
// Crossref is keyed by DOI.
func (c *Client) FetchOne(ctx context.Context, record *types.CVRecord, cache *types.MetricsCache, title string) (int, error) {
	groups := []*[]types.Publication{
		&record.Publications.BookChapters,
		&record.Publications.ConferenceProceedings,
		&record.Publications.JournalArticles,
		&record.Publications.Other,
	}
	for _, group := range groups {
		for i := range *group {
			pub := &(*group)[i]
			if pub.Title != title {
				continue
			}
			if pub.DOI == "" {
				return 0, ErrNotFound
			}
			citations, err := c.CrossrefCitations(ctx, pub.DOI)
			if err != nil {
				return 0, err
			}
			pub.Citations = &citations
			cache.Publications[pub.Title] = types.PublicationMetrics{
				Title:       pub.Title,
				DOI:         pub.DOI,
				Citations:   citations,
				Source:      "crossref",
				LastUpdated: time.Now().UTC().Format(time.RFC3339),
			}
			return citations, nil
		}
	}
	return 0, ErrNotFound
}
