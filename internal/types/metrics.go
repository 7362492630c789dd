package types

// MetricsCache is the JSON side file holding fetched citation metrics.
// Rendering never reads this file directly; counts are written back into
// the CV record's publication entries.
type MetricsCache struct {
	LastUpdated  string                        `json:"last_updated,omitempty"`
	Publications map[string]PublicationMetrics `json:"publications"`
	Profile      *ProfileMetrics               `json:"profile_metrics,omitempty"`
}

// PublicationMetrics holds the fetched metrics for a single publication,
// keyed in the cache by publication title.
type PublicationMetrics struct {
	Title       string `json:"title"`
	DOI         string `json:"doi,omitempty"`
	Citations   int    `json:"citations"`
	Source      string `json:"source"`
	LastUpdated string `json:"last_updated"`
}

// ProfileMetrics holds author-level metrics from a scholar profile.
type ProfileMetrics struct {
	Name        string `json:"name,omitempty"`
	Citations   int    `json:"citations_all"`
	HIndex      int    `json:"h_index"`
	I10Index    int    `json:"i10_index"`
	ScholarID   string `json:"scholar_id,omitempty"`
	LastUpdated string `json:"last_updated"`
}

// NewMetricsCache returns an empty cache ready for use.
func NewMetricsCache() *MetricsCache {
	return &MetricsCache{Publications: make(map[string]PublicationMetrics)}
}
