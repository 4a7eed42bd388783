package models

// WeekStory is one row of the Friday week-in-review timeline.
// Derived from stored records, never persisted.
type WeekStory struct {
	Day      string `json:"day"`
	Active   bool   `json:"active"`
	Tag      string `json:"tag"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// ArchiveEntry is one issue card on the archive index page, derived
// entirely from stored records at rebuild time.
type ArchiveEntry struct {
	Date           string
	Filename       string
	IssueNumber    int
	Headline       string
	SentimentLabel string
	SearchText     string
}

// ChartData holds the inline series embedded in the archive index:
// chronological (oldest first) sentiment positions and story counts.
type ChartData struct {
	Dates      []string `json:"dates"`
	Positions  []int    `json:"positions"`
	StoryCount []int    `json:"story_count"`
}
