package models

// Sentiment labels and their position bands on the gauge.
const (
	SentimentRiskOff  = "Risk-Off"
	SentimentCautious = "Cautious"
	SentimentRiskOn   = "Risk-On"
)

// SentimentBand returns the inclusive [lo,hi] gauge band for a label.
// Unknown labels get the full gauge.
func SentimentBand(label string) (int, int) {
	switch label {
	case SentimentRiskOff:
		return 5, 35
	case SentimentCautious:
		return 36, 64
	case SentimentRiskOn:
		return 65, 95
	default:
		return 5, 95
	}
}

type SentimentReading struct {
	Label    string `json:"label"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}

type Story struct {
	Source   string `json:"source"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
	URL      string `json:"url"`
	Tag      string `json:"tag"`
}

type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution"`
}

// Digest is the structured daily editorial output.
type Digest struct {
	EditorNote string           `json:"editor_note"`
	Sentiment  SentimentReading `json:"sentiment"`
	Stories    []Story          `json:"stories"`
	Quote      Quote            `json:"quote"`
}

// DigestRecord is the persisted envelope: one per calendar date,
// keyed by Date in YYYY-MM-DD form.
type DigestRecord struct {
	Date    string          `json:"date"`
	Digest  Digest          `json:"digest"`
	Market  MarketSnapshot  `json:"market"`
	Weather WeatherSnapshot `json:"weather"`
}
