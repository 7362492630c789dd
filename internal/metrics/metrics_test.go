package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-manager/internal/types"
)

const scholarProfileHTML = `<html><body>
<div id="gsc_prf_in">Dana Okafor</div>
<table id="gsc_rsb_st">
  <tr><td class="gsc_rsb_std">312</td><td class="gsc_rsb_std">120</td></tr>
  <tr><td class="gsc_rsb_std">9</td><td class="gsc_rsb_std">5</td></tr>
  <tr><td class="gsc_rsb_std">8</td><td class="gsc_rsb_std">4</td></tr>
</table>
</body></html>`

func testClient(serverURL string) *Client {
	return &Client{
		HTTPClient:      &http.Client{Timeout: 5 * time.Second},
		CrossrefBaseURL: serverURL,
		ScholarBaseURL:  serverURL,
		Delay:           time.Millisecond,
		sleep:           func(time.Duration) {},
	}
}

func metricsRecord() *types.CVRecord {
	return &types.CVRecord{
		Publications: types.Publications{
			ConferenceProceedings: []types.Publication{
				{Authors: []string{"Okafor, D."}, Year: 2021, Title: "Consensus in the classroom", DOI: "10.1000/demo.1"},
				{Authors: []string{"Okafor, D."}, Year: 2020, Title: "Raft for undergraduates"},
			},
			JournalArticles: []types.Publication{
				{Authors: []string{"Okafor, D."}, Year: 2022, Title: "Quorum intersection", DOI: "10.1000/demo.2"},
			},
		},
	}
}

func TestCrossrefCitations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works/10.1000%2Fdemo.1", r.URL.EscapedPath())
		fmt.Fprint(w, `{"message": {"DOI": "10.1000/demo.1", "is-referenced-by-count": 42}}`)
	}))
	defer server.Close()

	citations, err := testClient(server.URL).CrossrefCitations(context.Background(), "10.1000/demo.1")
	require.NoError(t, err)
	assert.Equal(t, 42, citations)
}

func TestCrossrefCitationsErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unknown doi", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			_, err := testClient(server.URL).CrossrefCitations(context.Background(), "10.1000/x")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScholarProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/citations", r.URL.Path)
		assert.Equal(t, "ABC123", r.URL.Query().Get("user"))
		fmt.Fprint(w, scholarProfileHTML)
	}))
	defer server.Close()

	profile, err := testClient(server.URL).ScholarProfile(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "Dana Okafor", profile.Name)
	assert.Equal(t, 312, profile.Citations)
	assert.Equal(t, 9, profile.HIndex)
	assert.Equal(t, 8, profile.I10Index)
	assert.Equal(t, "ABC123", profile.ScholarID)
}

func TestScholarProfileNoCitationTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>Please show you're not a robot</body></html>`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ScholarProfile(context.Background(), "ABC123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchAll(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		fmt.Fprintf(w, `{"message": {"is-referenced-by-count": %d}}`, requests*10)
	}))
	defer server.Close()

	record := metricsRecord()
	cache := types.NewMetricsCache()

	result := testClient(server.URL).FetchAll(context.Background(), record, cache)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Skipped, "publication without a DOI is skipped")
	assert.Equal(t, 0, result.Failed)

	// Counts are written back into the record and mirrored in the cache.
	require.NotNil(t, record.Publications.ConferenceProceedings[0].Citations)
	assert.Equal(t, 10, *record.Publications.ConferenceProceedings[0].Citations)
	assert.Nil(t, record.Publications.ConferenceProceedings[1].Citations)
	assert.Len(t, cache.Publications, 2)
	assert.Equal(t, "crossref", cache.Publications["Consensus in the classroom"].Source)
}

func TestFetchAllAbortsOnRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	record := metricsRecord()
	cache := types.NewMetricsCache()

	result := testClient(server.URL).FetchAll(context.Background(), record, cache)

	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 1, result.Failed, "pass stops at the first rate-limit response")
}

func TestFetchAllPausesBetweenRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"message": {"is-referenced-by-count": 1}}`)
	}))
	defer server.Close()

	var pauses int
	client := testClient(server.URL)
	client.sleep = func(d time.Duration) {
		pauses++
		assert.Equal(t, client.Delay, d)
	}

	client.FetchAll(context.Background(), metricsRecord(), types.NewMetricsCache())

	assert.Equal(t, 1, pauses, "one pause between two fetched publications")
}

func TestFetchOne(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"message": {"is-referenced-by-count": 7}}`)
	}))
	defer server.Close()

	record := metricsRecord()
	cache := types.NewMetricsCache()
	client := testClient(server.URL)

	citations, err := client.FetchOne(context.Background(), record, cache, "Quorum intersection")
	require.NoError(t, err)
	assert.Equal(t, 7, citations)

	_, err = client.FetchOne(context.Background(), record, cache, "Raft for undergraduates")
	assert.ErrorIs(t, err, ErrNotFound, "title without a DOI")

	_, err = client.FetchOne(context.Background(), record, cache, "No such paper")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCacheMissingFile(t *testing.T) {
	cache, err := LoadCache(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.NotNil(t, cache.Publications)
	assert.Empty(t, cache.Publications)
}

func TestSaveLoadCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	cache := types.NewMetricsCache()
	cache.Publications["Paper"] = types.PublicationMetrics{Title: "Paper", DOI: "10.1/x", Citations: 3, Source: "crossref"}
	cache.Profile = &types.ProfileMetrics{Citations: 100, HIndex: 5, I10Index: 4}

	require.NoError(t, SaveCache(path, cache))
	loaded, err := LoadCache(path)
	require.NoError(t, err)

	assert.Equal(t, 3, loaded.Publications["Paper"].Citations)
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, 100, loaded.Profile.Citations)
	assert.NotEmpty(t, loaded.LastUpdated)
}

func TestLoadCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := LoadCache(path)
	assert.Error(t, err)
}
