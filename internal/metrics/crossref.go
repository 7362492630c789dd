package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// crossrefResponse is the subset of the Crossref works payload we read.
type crossrefResponse struct {
	Message struct {
		DOI             string   `json:"DOI"`
		Title           []string `json:"title"`
		IsReferencedBy  int      `json:"is-referenced-by-count"`
		Publisher       string   `json:"publisher"`
		ContainerTitles []string `json:"container-title"`
	} `json:"message"`
}

// CrossrefCitations looks up a DOI on the Crossref REST API and returns
// its citation ("is-referenced-by") count. A 404 maps to ErrNotFound
// and a 429 to ErrRateLimited.
func (c *Client) CrossrefCitations(ctx context.Context, doi string) (int, error) {
	endpoint := fmt.Sprintf("%s/works/%s", c.CrossrefBaseURL, url.PathEscape(doi))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create Crossref request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("Crossref request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%w: doi %s", ErrNotFound, doi)
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("%w: crossref", ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("Crossref returned status %d for doi %s", resp.StatusCode, doi)
	}

	var payload crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode Crossref response: %w", err)
	}
	return payload.Message.IsReferencedBy, nil
}
