package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adriansoto/mexbrief/internal/models"
	"github.com/adriansoto/mexbrief/internal/storage"
)

// Indexer rebuilds the browsable archive from scratch on every run.
// It never patches: the whole index document is recomputed from the
// digest store and the rendered-issue directory, which makes the
// rebuild idempotent and immune to index drift.
type Indexer struct {
	Store *storage.Store
	Dir   string // rendered issues + index.html
}

func NewIndexer(store *storage.Store, dir string) *Indexer {
	return &Indexer{Store: store, Dir: dir}
}

// SaveIssue writes one rendered issue page under its date and
// regenerates the index.
func (ix *Indexer) SaveIssue(date, html string) error {
	if err := os.MkdirAll(ix.Dir, 0o755); err != nil {
		return fmt.Errorf("[Archive] create archive dir: %w", err)
	}
	path := filepath.Join(ix.Dir, date+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("[Archive] write issue: %w", err)
	}
	slog.Info("[Archive] saved issue", slog.String("path", path))

	return ix.Rebuild()
}

// Rebuild scans both directories and overwrites index.html wholesale.
// Zero issues renders an explicit empty state, not an error.
func (ix *Indexer) Rebuild() error {
	entries, err := ix.collectEntries()
	if err != nil {
		return err
	}
	charts, err := ix.collectAnalytics()
	if err != nil {
		return err
	}

	html, err := renderIndex(entries, charts)
	if err != nil {
		return fmt.Errorf("[Archive] render index: %w", err)
	}

	if err := os.MkdirAll(ix.Dir, 0o755); err != nil {
		return fmt.Errorf("[Archive] create archive dir: %w", err)
	}
	path := filepath.Join(ix.Dir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("[Archive] write index: %w", err)
	}

	slog.Info("[Archive] index rebuilt",
		slog.Int("issues", len(entries)), slog.Int("records", len(charts.Dates)))
	return nil
}

// collectEntries builds the issue cards from the rendered-issue files,
// newest first. The newest issue gets the highest number, assigned
// purely by reverse chronological filename sort: count, count-1, ..., 1.
func (ix *Indexer) collectEntries() ([]models.ArchiveEntry, error) {
	files, err := os.ReadDir(ix.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[Archive] scan archive dir: %w", err)
	}

	var names []string
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || filepath.Ext(name) != ".html" || name == "index.html" {
			continue
		}
		date := strings.TrimSuffix(name, ".html")
		if _, err := time.Parse(storage.DateLayout, date); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var entries []models.ArchiveEntry
	for i, name := range names {
		date := strings.TrimSuffix(name, ".html")
		entry := models.ArchiveEntry{
			Date:        date,
			Filename:    name,
			IssueNumber: len(names) - i,
		}

		record, ok, err := ix.Store.Load(date)
		if err != nil {
			slog.Warn("[Archive] skipping malformed record",
				slog.String("date", date), slog.String("error", err.Error()))
		} else if ok {
			if len(record.Digest.Stories) > 0 {
				entry.Headline = record.Digest.Stories[0].Headline
			}
			entry.SentimentLabel = record.Digest.Sentiment.Label
			entry.SearchText = searchText(record)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// collectAnalytics derives the chart series from the stored records,
// oldest first. A malformed record is skipped with a log so one bad
// file never aborts the rebuild.
func (ix *Indexer) collectAnalytics() (models.ChartData, error) {
	var charts models.ChartData

	dates, err := ix.Store.Dates()
	if err != nil {
		return charts, err
	}

	for _, date := range dates {
		record, ok, err := ix.Store.Load(date)
		if err != nil {
			slog.Warn("[Archive] skipping malformed record",
				slog.String("date", date), slog.String("error", err.Error()))
			continue
		}
		if !ok {
			continue
		}

		charts.Dates = append(charts.Dates, date)
		charts.Positions = append(charts.Positions, record.Digest.Sentiment.Position)
		charts.StoryCount = append(charts.StoryCount, len(record.Digest.Stories))
	}
	return charts, nil
}

// searchText is the lower-cased substring corpus for one record: the
// editor note, the lead headline, and every story's headline, body,
// source and tag.
func searchText(record *models.DigestRecord) string {
	var parts []string
	parts = append(parts, record.Digest.EditorNote)
	if len(record.Digest.Stories) > 0 {
		parts = append(parts, record.Digest.Stories[0].Headline)
	}
	for _, story := range record.Digest.Stories {
		parts = append(parts, story.Headline, story.Body, story.Source, story.Tag)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
