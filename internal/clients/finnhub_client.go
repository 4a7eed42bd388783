package clients

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/adriansoto/mexbrief/internal/models"
)

var (
	finnhubInstance *FinnhubClient
	finnhubOnce     sync.Once
)

type FinnhubClient struct {
	Client *finnhub.DefaultApiService
}

// GetFinnhubClient returns the shared Finnhub client, or nil when no
// FINNHUB_API_KEY is configured; the source is optional.
func GetFinnhubClient() *FinnhubClient {
	finnhubOnce.Do(func() {
		apiKey := os.Getenv("FINNHUB_API_KEY")
		if apiKey == "" {
			slog.Info("[FinnhubClient] FINNHUB_API_KEY not set, source disabled")
			return
		}
		cfg := finnhub.NewConfiguration()
		cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
		finnhubInstance = &FinnhubClient{
			Client: finnhub.NewAPIClient(cfg).DefaultApi,
		}
	})
	return finnhubInstance
}

func (f *FinnhubClient) Name() string { return "Finnhub" }

// Search pulls the general market-news feed and keeps items mentioning
// the topic in their headline or summary. Finnhub has no free-text news
// search, so the filter is applied client-side.
func (f *FinnhubClient) Search(ctx context.Context, topic, language string, limit int) ([]models.Hit, error) {
	res, _, err := f.Client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(topic)
	var hits []models.Hit
	for _, news := range res {
		if len(hits) >= limit {
			break
		}
		headline := ""
		if news.Headline != nil {
			headline = *news.Headline
		}
		summary := ""
		if news.Summary != nil {
			summary = *news.Summary
		}
		if !strings.Contains(strings.ToLower(headline+" "+summary), needle) {
			continue
		}

		hit := models.Hit{
			Title:       headline,
			Description: summary,
			SourceName:  "Finnhub",
		}
		if news.Source != nil && *news.Source != "" {
			hit.SourceName = *news.Source
		}
		if news.Url != nil {
			hit.URL = *news.Url
		}
		hits = append(hits, hit)
	}

	slog.Info("[FinnhubClient] fetched hits",
		slog.String("topic", topic), slog.Int("count", len(hits)))
	return hits, nil
}
