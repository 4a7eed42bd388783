package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/adriansoto/mexbrief/config"
	"github.com/adriansoto/mexbrief/internal/archive"
	"github.com/adriansoto/mexbrief/internal/clients"
	"github.com/adriansoto/mexbrief/internal/collector"
	"github.com/adriansoto/mexbrief/internal/delivery"
	"github.com/adriansoto/mexbrief/internal/logging"
	"github.com/adriansoto/mexbrief/internal/market"
	"github.com/adriansoto/mexbrief/internal/models"
	"github.com/adriansoto/mexbrief/internal/render"
	"github.com/adriansoto/mexbrief/internal/scraper"
	"github.com/adriansoto/mexbrief/internal/storage"
	"github.com/adriansoto/mexbrief/internal/summarizer"
)

func main() {
	config.LoadEnv()
	logging.InitLogger()

	if err := run(context.Background()); err != nil {
		slog.Error("[Pipeline] run aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run executes one sequential publishing cycle. Any returned error
// aborts the whole run; nothing partial is written past the point of
// failure.
func run(ctx context.Context) error {
	now := time.Now()
	slog.Info("[Pipeline] starting run", slog.String("date", now.Format(storage.DateLayout)))

	// 1. Market data first: fast, degrades to placeholders, never fatal.
	aggregator := market.NewAggregator()
	tickers := aggregator.FetchTickers(ctx)
	currency := aggregator.FetchCurrencyTable(ctx)
	weather := aggregator.FetchWeather(ctx)

	// 2. Collect news. An empty result ends the run before anything is
	// summarized or written.
	articles := collect(ctx)
	if len(articles) == 0 {
		slog.Error("[Pipeline] no articles found, check API keys or topics")
		return nil
	}

	// 3. Summarize.
	sum := summarizer.New(summarizer.SelectBackend())
	digest, err := sum.Summarize(ctx, articles)
	if err != nil {
		return err
	}

	// 4. Persist the record.
	store := storage.NewStore(config.DigestDir)
	record := &models.DigestRecord{
		Date:   now.Format(storage.DateLayout),
		Digest: *digest,
		Market: models.MarketSnapshot{
			Tickers:  tickers,
			Currency: currency,
		},
		Weather: weather,
	}
	if err := store.Save(record); err != nil {
		return err
	}

	// 5. Friday-only week rollup.
	var weekStories []models.WeekStory
	if storage.IsFriday(now) {
		weekStories, err = store.WeekStories(now)
		if err != nil {
			return err
		}
	}

	// Issue number: count of stored records, this one included.
	count, err := store.Count()
	if err != nil {
		return err
	}

	issue := render.Issue{
		Digest:      *digest,
		Tickers:     tickers,
		Currency:    currency,
		Weather:     weather,
		WeekStories: weekStories,
		IssueNumber: count,
		Date:        now,
	}

	// 6. Render and deliver.
	html, err := render.BuildHTML(issue)
	if err != nil {
		return err
	}
	plain := render.BuildPlain(*digest, now)
	if err := delivery.SendEmail(html, plain, now); err != nil {
		return err
	}

	// 7. Archive: write the web edition and rebuild the index.
	issueHTML, err := render.BuildIssueHTML(issue)
	if err != nil {
		return err
	}
	indexer := archive.NewIndexer(store, config.ArchiveDir)
	if err := indexer.SaveIssue(record.Date, issueHTML); err != nil {
		return err
	}

	slog.Info("[Pipeline] done",
		slog.Int("issue", count),
		slog.Bool("week_in_review", len(weekStories) > 0))
	return nil
}

func collect(ctx context.Context) []models.Article {
	sources := []collector.Source{clients.GetNewsAPIClient()}
	if finnhub := clients.GetFinnhubClient(); finnhub != nil {
		sources = append(sources, finnhub)
	}

	c := &collector.Collector{
		Sources:  sources,
		Fetcher:  scraper.New(),
		Language: config.Language,
		PerTopic: config.MaxArticlesPerTopic,
		MaxChars: config.MaxArticleChars,
	}
	if valkey := clients.InitValkey(); valkey != nil {
		defer clients.CloseValkey()
		c.Cache = valkey
	}

	return c.Collect(ctx, config.Topics)
}
