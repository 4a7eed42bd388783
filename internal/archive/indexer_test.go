package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriansoto/mexbrief/internal/models"
	"github.com/adriansoto/mexbrief/internal/storage"
)

func testRecord(date, label string, position, stories int) *models.DigestRecord {
	record := &models.DigestRecord{
		Date: date,
		Digest: models.Digest{
			EditorNote: "Editor note for " + date,
			Sentiment: models.SentimentReading{
				Label:    label,
				Position: position,
				Context:  "context",
			},
		},
	}
	for i := 0; i < stories; i++ {
		record.Digest.Stories = append(record.Digest.Stories, models.Story{
			Source:   "Reuters",
			Headline: "Headline " + date,
			Body:     "Peso moves on trade news.",
			URL:      "https://example.com/" + date,
			Tag:      "FX",
		})
	}
	return record
}

func newTestIndexer(t *testing.T) (*Indexer, *storage.Store) {
	t.Helper()
	store := storage.NewStore(t.TempDir())
	return NewIndexer(store, t.TempDir()), store
}

func readIndex(t *testing.T, ix *Indexer) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ix.Dir, "index.html"))
	require.NoError(t, err)
	return string(data)
}

func TestSaveIssueWritesPageAndIndex(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentRiskOn, 70, 6)))

	require.NoError(t, ix.SaveIssue("2025-01-06", "<html>issue</html>"))

	page, err := os.ReadFile(filepath.Join(ix.Dir, "2025-01-06.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>issue</html>", string(page))

	index := readIndex(t, ix)
	assert.Contains(t, index, `href="2025-01-06.html"`)
	assert.Contains(t, index, "ISSUE #1")
	assert.Contains(t, index, "Headline 2025-01-06")
	assert.Contains(t, index, models.SentimentRiskOn)
}

func TestRebuildNumbersIssuesNewestFirst(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentRiskOn, 70, 6)))
	require.NoError(t, store.Save(testRecord("2025-01-07", models.SentimentRiskOff, 20, 4)))

	require.NoError(t, ix.SaveIssue("2025-01-06", "a"))
	require.NoError(t, ix.SaveIssue("2025-01-07", "b"))

	index := readIndex(t, ix)

	// Newest card first, numbered count..1 with no gaps.
	newest := strings.Index(index, `href="2025-01-07.html"`)
	oldest := strings.Index(index, `href="2025-01-06.html"`)
	require.GreaterOrEqual(t, newest, 0)
	require.GreaterOrEqual(t, oldest, 0)
	assert.Less(t, newest, oldest)
	assert.Contains(t, index, "ISSUE #2")
	assert.Contains(t, index, "ISSUE #1")
}

func TestRebuildEmbedsChartSeriesOldestFirst(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentRiskOn, 70, 6)))
	require.NoError(t, store.Save(testRecord("2025-01-07", models.SentimentRiskOff, 20, 4)))

	// Save out of order; the series still comes out chronological.
	require.NoError(t, ix.SaveIssue("2025-01-07", "b"))
	require.NoError(t, ix.SaveIssue("2025-01-06", "a"))

	index := readIndex(t, ix)
	assert.Contains(t, index, `"dates":["2025-01-06","2025-01-07"]`)
	assert.Contains(t, index, `"positions":[70,20]`)
	assert.Contains(t, index, `"story_count":[6,4]`)
}

func TestRebuildIsIdempotent(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentCautious, 50, 3)))
	require.NoError(t, ix.SaveIssue("2025-01-06", "a"))

	first := readIndex(t, ix)
	require.NoError(t, ix.Rebuild())
	second := readIndex(t, ix)

	assert.Equal(t, first, second)
}

func TestRebuildEmptyState(t *testing.T) {
	ix, _ := newTestIndexer(t)

	require.NoError(t, ix.Rebuild())

	index := readIndex(t, ix)
	assert.Contains(t, index, "No issues yet.")
	assert.Contains(t, index, `"dates":[]`)
}

func TestRebuildSkipsMalformedRecords(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentRiskOn, 70, 2)))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "2025-01-07.json"), []byte("{broken"), 0o644))

	require.NoError(t, ix.SaveIssue("2025-01-06", "a"))
	require.NoError(t, ix.SaveIssue("2025-01-07", "b"))

	index := readIndex(t, ix)
	// The card for the broken record still exists, without metadata.
	assert.Contains(t, index, `href="2025-01-07.html"`)
	// Only the healthy record feeds the charts.
	assert.Contains(t, index, `"positions":[70]`)
}

func TestRebuildIgnoresStrayFiles(t *testing.T) {
	ix, store := newTestIndexer(t)
	require.NoError(t, store.Save(testRecord("2025-01-06", models.SentimentRiskOn, 70, 1)))
	require.NoError(t, ix.SaveIssue("2025-01-06", "a"))
	require.NoError(t, os.WriteFile(filepath.Join(ix.Dir, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ix.Dir, "draft.html"), []byte("x"), 0o644))

	require.NoError(t, ix.Rebuild())

	index := readIndex(t, ix)
	assert.NotContains(t, index, `href="draft.html"`)
	assert.Contains(t, index, "ISSUE #1")
	assert.NotContains(t, index, "ISSUE #2")
}

func TestSearchTextCorpus(t *testing.T) {
	record := testRecord("2025-01-06", models.SentimentRiskOn, 70, 2)
	record.Digest.Stories[1].Headline = "Banxico Holds Rates"

	corpus := searchText(record)

	assert.Equal(t, strings.ToLower(corpus), corpus)
	assert.Contains(t, corpus, "editor note for 2025-01-06")
	assert.Contains(t, corpus, "banxico holds rates")
	assert.Contains(t, corpus, "reuters")
	assert.Contains(t, corpus, "fx")
}
