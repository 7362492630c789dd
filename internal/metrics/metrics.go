// Package metrics fetches citation metrics from external sources and
// writes them back into the CV record. Rendering never calls this
// package; it only reads counts already persisted in the record.
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jonathan/cv-manager/internal/types"
)

// Sentinel errors for collaborator failures.
var (
	// ErrNotFound indicates the source has no entry for the query.
	ErrNotFound = errors.New("publication not found")
	// ErrRateLimited indicates the source rejected the request for rate
	// limiting; back off and retry later.
	ErrRateLimited = errors.New("rate limited by metrics source")
)

// DefaultDelay is the mandatory pause between consecutive requests to
// the same source.
const DefaultDelay = 3 * time.Second

// DefaultTimeout bounds a single metrics request.
const DefaultTimeout = 30 * time.Second

const userAgent = "cv-manager/1.0 (mailto:cv-manager@localhost)"

// Client fetches citation metrics. CrossrefBaseURL and ScholarBaseURL
// are overridable for tests.
type Client struct {
	HTTPClient      *http.Client
	CrossrefBaseURL string
	ScholarBaseURL  string
	// Delay is the pause inserted between consecutive fetches in
	// FetchAll. Zero means DefaultDelay.
	Delay time.Duration
	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewClient returns a client with production endpoints and defaults.
func NewClient() *Client {
	return &Client{
		HTTPClient:      &http.Client{Timeout: DefaultTimeout},
		CrossrefBaseURL: "https://api.crossref.org",
		ScholarBaseURL:  "https://scholar.google.com",
		Delay:           DefaultDelay,
		sleep:           time.Sleep,
	}
}

func (c *Client) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return DefaultDelay
}

func (c *Client) pause() {
	sleep := c.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(c.delay())
}

// LoadCache reads the metrics cache side file, returning an empty cache
// when the file does not exist yet.
func LoadCache(path string) (*types.MetricsCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewMetricsCache(), nil
		}
		return nil, fmt.Errorf("failed to read metrics cache: %w", err)
	}
	var cache types.MetricsCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to parse metrics cache: %w", err)
	}
	if cache.Publications == nil {
		cache.Publications = make(map[string]types.PublicationMetrics)
	}
	return &cache, nil
}

// SaveCache writes the cache side file, stamping last_updated.
func SaveCache(path string, cache *types.MetricsCache) error {
	cache.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics cache: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metrics cache: %w", err)
	}
	return nil
}
