package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	scrapeTimeout = 8 * time.Second
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"

	// Extractions shorter than this are usually cookie walls or teasers;
	// the caller falls back to the source description instead.
	minUsableChars = 100
)

type Scraper struct {
	Client *http.Client
}

func New() *Scraper {
	return &Scraper{
		Client: &http.Client{Timeout: scrapeTimeout},
	}
}

// FetchArticleText downloads a page and extracts its paragraph text,
// capped at maxChars. Returns an error when the page yields no usable
// body; the collector treats that as "use the description".
func (s *Scraper) FetchArticleText(ctx context.Context, url string, maxChars int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("[Scraper] unexpected status %d for %s", res.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", err
	}

	text := ExtractParagraphText(doc)
	if len(text) < minUsableChars {
		return "", fmt.Errorf("[Scraper] extracted text too short (%d chars) for %s", len(text), url)
	}
	if len(text) > maxChars {
		text = text[:maxChars]
	}

	slog.Debug("[Scraper] extracted article text",
		slog.String("url", url), slog.Int("chars", len(text)))
	return text, nil
}

// ExtractParagraphText strips non-content elements and joins the
// remaining paragraph text with normalized whitespace.
func ExtractParagraphText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, aside, header, figure").Remove()

	var parts []string
	doc.Find("p").Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
