package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriansoto/mexbrief/internal/models"
)

func sampleRecord(date string) *models.DigestRecord {
	return &models.DigestRecord{
		Date: date,
		Digest: models.Digest{
			EditorNote: "The peso had a quiet session.",
			Sentiment: models.SentimentReading{
				Label:    models.SentimentCautious,
				Position: 50,
				Context:  "Mixed signals across markets.",
			},
			Stories: []models.Story{
				{
					Source:   "Reuters",
					Headline: "Banxico holds rates steady",
					Body:     "The central bank left its benchmark unchanged.",
					URL:      "https://example.com/banxico",
					Tag:      "Rates",
				},
			},
			Quote: models.Quote{Text: "Markets climb a wall of worry.", Attribution: "Anonymous"},
		},
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	record := sampleRecord("2025-01-06")
	require.NoError(t, store.Save(record))

	loaded, ok, err := store.Load("2025-01-06")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record, loaded)
}

func TestStoreLoadNotFound(t *testing.T) {
	store := NewStore(t.TempDir())

	loaded, ok, err := store.Load("2025-01-06")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, loaded)
}

func TestStoreLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-01-06.json"), []byte("{not json"), 0o644))

	_, _, err := store.Load("2025-01-06")
	assert.Error(t, err)
}

func TestStoreSaveRejectsBadDate(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, date := range []string{"", "06-01-2025", "2025-13-40", "today"} {
		record := sampleRecord("2025-01-06")
		record.Date = date
		assert.Error(t, store.Save(record), "date %q", date)
	}
}

func TestStoreSaveClampsSentiment(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		position int
		want     int
	}{
		{"below risk-on band", models.SentimentRiskOn, 40, 65},
		{"above risk-off band", models.SentimentRiskOff, 50, 35},
		{"above cautious band", models.SentimentCautious, 90, 64},
		{"inside band untouched", models.SentimentRiskOn, 72, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())
			record := sampleRecord("2025-01-06")
			record.Digest.Sentiment.Label = tt.label
			record.Digest.Sentiment.Position = tt.position
			require.NoError(t, store.Save(record))

			loaded, ok, err := store.Load("2025-01-06")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, loaded.Digest.Sentiment.Position)
		})
	}
}

func TestStoreLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Hand-written legacy record without sentiment or stories.
	raw := `{"date":"2025-01-06","digest":{"editor_note":"quiet day"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-01-06.json"), []byte(raw), 0o644))

	loaded, ok, err := store.Load("2025-01-06")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.SentimentCautious, loaded.Digest.Sentiment.Label)
	assert.Equal(t, 50, loaded.Digest.Sentiment.Position)
	assert.NotNil(t, loaded.Digest.Stories)
	assert.Empty(t, loaded.Digest.Stories)
}

func TestStoreLoadDefaultsPositionToBandMidpoint(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{models.SentimentRiskOff, 20},
		{models.SentimentCautious, 50},
		{models.SentimentRiskOn, 80},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			dir := t.TempDir()
			store := NewStore(dir)
			raw := `{"date":"2025-01-06","digest":{"sentiment":{"label":"` + tt.label + `"}}}`
			require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-01-06.json"), []byte(raw), 0o644))

			loaded, _, err := store.Load("2025-01-06")
			require.NoError(t, err)
			assert.Equal(t, tt.want, loaded.Digest.Sentiment.Position)
		})
	}
}

func TestStoreDatesChronologicalAndFiltered(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	for _, date := range []string{"2025-01-08", "2025-01-06", "2025-01-07"} {
		require.NoError(t, store.Save(sampleRecord(date)))
	}
	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup.json"), []byte("{}"), 0o644))

	dates, err := store.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-06", "2025-01-07", "2025-01-08"}, dates)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestStoreDatesMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))

	dates, err := store.Dates()
	assert.NoError(t, err)
	assert.Empty(t, dates)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	first := sampleRecord("2025-01-06")
	require.NoError(t, store.Save(first))

	second := sampleRecord("2025-01-06")
	second.Digest.EditorNote = "Second take."
	require.NoError(t, store.Save(second))

	loaded, _, err := store.Load("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "Second take.", loaded.Digest.EditorNote)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
