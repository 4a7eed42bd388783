package collector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/adriansoto/mexbrief/internal/models"
)

// removedPlaceholder marks hits whose content the upstream provider
// withdrew; their titles are literally "[Removed]".
const removedPlaceholder = "[Removed]"

// Source is one topic-searchable news provider.
type Source interface {
	Name() string
	Search(ctx context.Context, topic, language string, limit int) ([]models.Hit, error)
}

// TextFetcher retrieves the full article body for a hit.
type TextFetcher interface {
	FetchArticleText(ctx context.Context, url string, maxChars int) (string, error)
}

// SeenCache is an optional cross-run URL dedup set.
type SeenCache interface {
	IsSeen(ctx context.Context, url string) bool
	MarkSeen(ctx context.Context, url string) error
}

type Collector struct {
	Sources  []Source
	Fetcher  TextFetcher
	Cache    SeenCache // nil disables cross-run dedup
	Language string
	PerTopic int
	MaxChars int
}

// Collect fans out over topics in configured order and returns the
// deduplicated, normalized article list. A failing topic or source is
// logged and skipped; only the aggregate result matters.
func (c *Collector) Collect(ctx context.Context, topics []string) []models.Article {
	seen := make(map[string]struct{})
	var articles []models.Article

	for _, topic := range topics {
		for _, source := range c.Sources {
			hits, err := source.Search(ctx, topic, c.Language, c.PerTopic)
			if err != nil {
				slog.Warn("[Collector] topic fetch failed",
					slog.String("source", source.Name()),
					slog.String("topic", topic),
					slog.String("error", err.Error()))
				continue
			}

			for _, hit := range hits {
				if article, ok := c.normalize(ctx, hit, seen); ok {
					articles = append(articles, article)
				}
			}
		}
	}

	slog.Info("[Collector] articles collected", slog.Int("count", len(articles)))
	return articles
}

func (c *Collector) normalize(ctx context.Context, hit models.Hit, seen map[string]struct{}) (models.Article, bool) {
	if hit.URL == "" {
		return models.Article{}, false
	}
	if _, dup := seen[hit.URL]; dup {
		return models.Article{}, false
	}
	if strings.Contains(hit.Title, removedPlaceholder) {
		return models.Article{}, false
	}
	if c.Cache != nil && c.Cache.IsSeen(ctx, hit.URL) {
		return models.Article{}, false
	}
	seen[hit.URL] = struct{}{}

	content := hit.Description
	if c.Fetcher != nil {
		if text, err := c.Fetcher.FetchArticleText(ctx, hit.URL, c.MaxChars); err == nil {
			content = text
		} else {
			slog.Debug("[Collector] falling back to description",
				slog.String("url", hit.URL),
				slog.String("error", err.Error()))
		}
	}
	if content == "" {
		return models.Article{}, false
	}

	if c.Cache != nil {
		if err := c.Cache.MarkSeen(ctx, hit.URL); err != nil {
			slog.Warn("[Collector] failed to mark url seen",
				slog.String("url", hit.URL),
				slog.String("error", err.Error()))
		}
	}

	source := hit.SourceName
	if source == "" {
		source = "Unknown"
	}

	return models.Article{
		Title:      strings.TrimSpace(hit.Title),
		Content:    content,
		SourceName: source,
		URL:        hit.URL,
	}, true
}
