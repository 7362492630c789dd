package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/cv-manager/internal/types"
)

// ScholarProfile scrapes author-level metrics (total citations, h-index,
// i10-index) from a Google Scholar profile page. Scholar has no public
// API; a 429 response maps to ErrRateLimited and an unrecognizable page
// to ErrNotFound.
func (c *Client) ScholarProfile(ctx context.Context, scholarID string) (*types.ProfileMetrics, error) {
	endpoint := fmt.Sprintf("%s/citations?user=%s&hl=en", c.ScholarBaseURL, scholarID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Scholar request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Scholar request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: scholar profile %s", ErrNotFound, scholarID)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: scholar", ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("Scholar returned status %d for profile %s", resp.StatusCode, scholarID)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Scholar page: %w", err)
	}

	// The citation stats table lists "All" values in the first column:
	// citations, h-index, i10-index in row order.
	var values []int
	doc.Find("table#gsc_rsb_st td.gsc_rsb_std").Each(func(i int, sel *goquery.Selection) {
		// Every stat has an "All" and a "Since" column; keep the even
		// (All) cells only.
		if i%2 != 0 {
			return
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(sel.Text()))
		if convErr == nil {
			values = append(values, n)
		}
	})
	if len(values) < 3 {
		return nil, fmt.Errorf("%w: scholar profile %s has no citation table", ErrNotFound, scholarID)
	}

	name := strings.TrimSpace(doc.Find("#gsc_prf_in").Text())

	return &types.ProfileMetrics{
		Name:        name,
		Citations:   values[0],
		HIndex:      values[1],
		I10Index:    values[2],
		ScholarID:   scholarID,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
