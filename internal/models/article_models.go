package models

// Article is the normalized unit the collector hands to the summarizer.
// It only lives within one collection run; URL is the dedup key.
type Article struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	SourceName string `json:"source"`
	URL        string `json:"url"`
}

// Hit is a raw search result from one of the topic sources before
// scraping and dedup.
type Hit struct {
	Title       string
	Description string
	SourceName  string
	URL         string
}
