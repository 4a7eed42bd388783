package storage

import (
	"log/slog"
	"time"

	"github.com/adriansoto/mexbrief/internal/models"
)

// Story bodies in the timeline are cut to this many characters.
const rollupBodyChars = 160

var dayLabels = [5]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

func IsFriday(now time.Time) bool {
	return now.Weekday() == time.Friday
}

// WeekStories builds the Friday week-in-review timeline: the lead story
// of each weekday of the current week that has a saved digest. Days
// without a record are skipped silently; order stays chronological with
// gaps, never padded. A day is active when its sentiment was anything
// but Cautious.
func (s *Store) WeekStories(now time.Time) ([]models.WeekStory, error) {
	// Monday of the current week; Sunday counts as the week's end.
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)

	var stories []models.WeekStory
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, i)
		record, ok, err := s.Load(day.Format(DateLayout))
		if err != nil {
			return nil, err
		}
		if !ok || len(record.Digest.Stories) == 0 {
			continue
		}

		top := record.Digest.Stories[0]
		stories = append(stories, models.WeekStory{
			Day:      dayLabels[i],
			Active:   record.Digest.Sentiment.Label != models.SentimentCautious,
			Tag:      storyTag(top),
			Headline: top.Headline,
			Body:     truncate(top.Body, rollupBodyChars),
		})
	}

	slog.Info("[Store] week rollup built", slog.Int("days", len(stories)))
	return stories, nil
}

func storyTag(story models.Story) string {
	if story.Tag == "" {
		return "Macro"
	}
	return story.Tag
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s + "..."
	}
	return s[:max] + "..."
}
