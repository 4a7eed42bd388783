package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const everythingJSON = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": "reuters", "name": "Reuters"},
      "title": "Peso rallies on rate decision",
      "description": "The Mexican peso gained.",
      "url": "https://example.com/peso"
    },
    {
      "source": {"name": "Bloomberg"},
      "title": "CETES auction sees strong demand",
      "description": "Short-term paper well bid.",
      "url": "https://example.com/cetes"
    }
  ]
}`

func newTestNewsAPI(srv *httptest.Server) *NewsAPIClient {
	return &NewsAPIClient{Client: srv.Client(), APIKey: "test-key", Endpoint: srv.URL}
}

func TestNewsAPISearchParsesHits(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte(everythingJSON))
	}))
	defer srv.Close()

	hits, err := newTestNewsAPI(srv).Search(context.Background(), "finance", "en", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "Peso rallies on rate decision", hits[0].Title)
	assert.Equal(t, "Reuters", hits[0].SourceName)
	assert.Equal(t, "https://example.com/peso", hits[0].URL)
	assert.Equal(t, "Short-term paper well bid.", hits[1].Description)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "finance", query.Get("q"))
	assert.Equal(t, "en", query.Get("language"))
	assert.Equal(t, "5", query.Get("pageSize"))
	assert.Equal(t, "publishedAt", query.Get("sortBy"))
	assert.Equal(t, "test-key", query.Get("apiKey"))
}

func TestNewsAPISearchRequiresKey(t *testing.T) {
	client := &NewsAPIClient{Client: http.DefaultClient, Endpoint: "http://unused"}

	_, err := client.Search(context.Background(), "finance", "en", 5)
	assert.ErrorContains(t, err, "API key")
}

func TestNewsAPISearchFailsFastOnUnauthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestNewsAPI(srv).Search(context.Background(), "finance", "en", 5)
	assert.ErrorContains(t, err, "invalid API key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewsAPISearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(everythingJSON))
	}))
	defer srv.Close()

	hits, err := newTestNewsAPI(srv).Search(context.Background(), "finance", "en", 5)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.Equal(t, int32(2), calls.Load())
}
