package summarizer

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/adriansoto/mexbrief/internal/models"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// ReconcileSentiment makes the digest's sentiment reading internally
// consistent: an unknown label falls back to Cautious, a missing
// position is derived from a VADER pass over the context sentence, and
// any position outside the label's gauge band is clamped into it.
func ReconcileSentiment(digest *models.Digest) {
	s := &digest.Sentiment

	switch s.Label {
	case models.SentimentRiskOff, models.SentimentCautious, models.SentimentRiskOn:
	default:
		slog.Warn("[Summarizer] unknown sentiment label, defaulting",
			slog.String("label", s.Label))
		s.Label = models.SentimentCautious
	}

	if s.Position == 0 {
		s.Position = DerivePosition(s.Context)
	}

	lo, hi := models.SentimentBand(s.Label)
	if s.Position < lo || s.Position > hi {
		clamped := s.Position
		if clamped < lo {
			clamped = lo
		}
		if clamped > hi {
			clamped = hi
		}
		slog.Warn("[Summarizer] sentiment position outside label band, clamping",
			slog.String("label", s.Label),
			slog.Int("position", s.Position),
			slog.Int("clamped", clamped))
		s.Position = clamped
	}
}

// DerivePosition maps a VADER compound score over the context text onto
// the 5-95 gauge. Neutral text lands on 50.
func DerivePosition(context string) int {
	plain := markdownToText(context)
	if plain == "" {
		return 50
	}
	score := analyzer.PolarityScores(plain).Compound
	position := int(50 + score*45)
	if position < 5 {
		position = 5
	}
	if position > 95 {
		position = 95
	}
	return position
}

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\(https?:\/\/[^\s\)]+\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func markdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := strings.Join(strings.Fields(string(output)), " ")

	plain = mdLinkPattern.ReplaceAllString(plain, "$1")
	return strings.TrimSpace(urlPattern.ReplaceAllString(plain, ""))
}
