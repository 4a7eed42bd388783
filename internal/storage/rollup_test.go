package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriansoto/mexbrief/internal/models"
)

// 2025-01-10 is a Friday; its week runs Mon 2025-01-06 through Fri 2025-01-10.
var friday = time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

func saveDay(t *testing.T, store *Store, date, label, headline string) {
	t.Helper()
	record := sampleRecord(date)
	record.Digest.Sentiment.Label = label
	record.Digest.Sentiment.Position = 0
	record.Digest.Stories[0].Headline = headline
	require.NoError(t, store.Save(record))
}

func TestIsFriday(t *testing.T) {
	assert.True(t, IsFriday(friday))
	assert.False(t, IsFriday(friday.AddDate(0, 0, -1)))
	assert.False(t, IsFriday(friday.AddDate(0, 0, 2)))
}

func TestWeekStoriesSkipsMissingDays(t *testing.T) {
	store := NewStore(t.TempDir())
	saveDay(t, store, "2025-01-06", models.SentimentRiskOn, "Peso rallies")
	saveDay(t, store, "2025-01-07", models.SentimentCautious, "Markets drift")
	saveDay(t, store, "2025-01-09", models.SentimentRiskOff, "Tariff shock")

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 3)

	assert.Equal(t, "Mon", stories[0].Day)
	assert.Equal(t, "Tue", stories[1].Day)
	assert.Equal(t, "Thu", stories[2].Day)
	assert.Equal(t, "Peso rallies", stories[0].Headline)
	assert.Equal(t, "Tariff shock", stories[2].Headline)
}

func TestWeekStoriesActiveHeuristic(t *testing.T) {
	store := NewStore(t.TempDir())
	saveDay(t, store, "2025-01-06", models.SentimentRiskOn, "a")
	saveDay(t, store, "2025-01-07", models.SentimentCautious, "b")
	saveDay(t, store, "2025-01-08", models.SentimentRiskOff, "c")

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 3)

	assert.True(t, stories[0].Active)
	assert.False(t, stories[1].Active)
	assert.True(t, stories[2].Active)
}

func TestWeekStoriesExcludesOtherWeeks(t *testing.T) {
	store := NewStore(t.TempDir())
	saveDay(t, store, "2025-01-03", models.SentimentRiskOn, "previous friday")
	saveDay(t, store, "2025-01-13", models.SentimentRiskOn, "next monday")
	saveDay(t, store, "2025-01-08", models.SentimentRiskOn, "this wednesday")

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Wed", stories[0].Day)
	assert.Equal(t, "this wednesday", stories[0].Headline)
}

func TestWeekStoriesSundayAnchorsToSameWeek(t *testing.T) {
	store := NewStore(t.TempDir())
	saveDay(t, store, "2025-01-06", models.SentimentRiskOn, "monday story")

	// Sunday 2025-01-12 still belongs to the week of Mon 2025-01-06.
	sunday := time.Date(2025, time.January, 12, 9, 0, 0, 0, time.UTC)
	stories, err := store.WeekStories(sunday)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Mon", stories[0].Day)
}

func TestWeekStoriesTruncatesBody(t *testing.T) {
	store := NewStore(t.TempDir())

	long := strings.Repeat("x", 400)
	record := sampleRecord("2025-01-06")
	record.Digest.Stories[0].Body = long
	require.NoError(t, store.Save(record))

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, long[:rollupBodyChars]+"...", stories[0].Body)
	assert.Len(t, stories[0].Body, rollupBodyChars+3)
}

func TestWeekStoriesDefaultsTag(t *testing.T) {
	store := NewStore(t.TempDir())

	record := sampleRecord("2025-01-07")
	record.Digest.Stories[0].Tag = ""
	require.NoError(t, store.Save(record))

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Macro", stories[0].Tag)
}

func TestWeekStoriesSkipsStorylessDays(t *testing.T) {
	store := NewStore(t.TempDir())

	record := sampleRecord("2025-01-06")
	record.Digest.Stories = nil
	require.NoError(t, store.Save(record))
	saveDay(t, store, "2025-01-07", models.SentimentCautious, "has stories")

	stories, err := store.WeekStories(friday)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Tue", stories[0].Day)
}
