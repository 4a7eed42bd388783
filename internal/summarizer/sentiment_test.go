package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adriansoto/mexbrief/internal/models"
)

func reading(label string, position int, context string) *models.Digest {
	return &models.Digest{
		Sentiment: models.SentimentReading{Label: label, Position: position, Context: context},
	}
}

func TestReconcileSentimentKeepsConsistentReading(t *testing.T) {
	digest := reading(models.SentimentRiskOn, 80, "strong gains")
	ReconcileSentiment(digest)

	assert.Equal(t, models.SentimentRiskOn, digest.Sentiment.Label)
	assert.Equal(t, 80, digest.Sentiment.Position)
}

func TestReconcileSentimentDefaultsUnknownLabel(t *testing.T) {
	digest := reading("Bullish", 50, "ctx")
	ReconcileSentiment(digest)

	assert.Equal(t, models.SentimentCautious, digest.Sentiment.Label)
	assert.Equal(t, 50, digest.Sentiment.Position)
}

func TestReconcileSentimentClampsIntoBand(t *testing.T) {
	tests := []struct {
		label    string
		position int
		want     int
	}{
		{models.SentimentRiskOn, 30, 65},
		{models.SentimentRiskOff, 90, 35},
		{models.SentimentCautious, 10, 36},
		{models.SentimentCautious, 99, 64},
	}

	for _, tt := range tests {
		digest := reading(tt.label, tt.position, "ctx")
		ReconcileSentiment(digest)
		assert.Equal(t, tt.want, digest.Sentiment.Position, "%s at %d", tt.label, tt.position)
	}
}

func TestReconcileSentimentDerivesMissingPosition(t *testing.T) {
	digest := reading(models.SentimentRiskOff, 0, "Markets crashed amid terrible panic and fear of a severe crisis.")
	ReconcileSentiment(digest)

	lo, hi := models.SentimentBand(models.SentimentRiskOff)
	assert.GreaterOrEqual(t, digest.Sentiment.Position, lo)
	assert.LessOrEqual(t, digest.Sentiment.Position, hi)
	assert.NotZero(t, digest.Sentiment.Position)
}

func TestDerivePositionNeutralOnEmptyContext(t *testing.T) {
	assert.Equal(t, 50, DerivePosition(""))
}

func TestDerivePositionTracksPolarity(t *testing.T) {
	positive := DerivePosition("Excellent growth, wonderful gains, markets celebrate a fantastic rally.")
	negative := DerivePosition("Terrible losses, markets collapse in a horrible panic, fears worsen.")

	assert.Greater(t, positive, 50)
	assert.Less(t, negative, 50)
	assert.GreaterOrEqual(t, negative, 5)
	assert.LessOrEqual(t, positive, 95)
}

func TestDerivePositionStripsMarkdown(t *testing.T) {
	plain := DerivePosition("Great rally in Mexican equities today.")
	marked := DerivePosition("**Great** rally in Mexican equities today, see https://example.com/r for charts.")

	assert.Greater(t, plain, 50)
	assert.Greater(t, marked, 50)
}

func TestSentimentBand(t *testing.T) {
	tests := []struct {
		label  string
		lo, hi int
	}{
		{models.SentimentRiskOff, 5, 35},
		{models.SentimentCautious, 36, 64},
		{models.SentimentRiskOn, 65, 95},
		{"unknown", 5, 95},
	}

	for _, tt := range tests {
		lo, hi := models.SentimentBand(tt.label)
		assert.Equal(t, tt.lo, lo, tt.label)
		assert.Equal(t, tt.hi, hi, tt.label)
	}
}
