package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adriansoto/mexbrief/internal/models"
)

const DateLayout = "2006-01-02"

// Store owns the on-disk digest records: one JSON file per calendar
// date named YYYY-MM-DD.json. It is the single durable state of the
// pipeline; everything else is recomputed from it.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(date string) string {
	return filepath.Join(s.Dir, date+".json")
}

// Save writes the record under its date key, overwriting any existing
// record for that date. Sentiment label/position drift is clamped here
// so no inconsistent pair is ever persisted.
func (s *Store) Save(record *models.DigestRecord) error {
	if _, err := time.Parse(DateLayout, record.Date); err != nil {
		return fmt.Errorf("[Store] invalid record date %q: %w", record.Date, err)
	}
	clampSentiment(record)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("[Store] create digest dir: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("[Store] marshal record: %w", err)
	}
	path := s.path(record.Date)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("[Store] write record: %w", err)
	}

	slog.Info("[Store] saved digest", slog.String("path", path))
	return nil
}

// Load returns the record for an exact date. A missing record is the
// normal not-found outcome (ok=false, err=nil); malformed content is an
// error. Optional-field defaults are resolved here so readers never
// see a half-empty sentiment block.
func (s *Store) Load(date string) (*models.DigestRecord, bool, error) {
	data, err := os.ReadFile(s.path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[Store] read record %s: %w", date, err)
	}

	var record models.DigestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("[Store] malformed record %s: %w", date, err)
	}

	applyDefaults(&record)
	return &record, true, nil
}

// Dates lists the dates of all stored records, oldest first. Files
// whose names do not parse as calendar dates are ignored.
func (s *Store) Dates() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[Store] scan digest dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		date := name[:len(name)-len(".json")]
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	// ReadDir returns lexical order, which is chronological for
	// YYYY-MM-DD names.
	return dates, nil
}

// Count returns the number of stored records; issue numbers are
// count-derived, never stored.
func (s *Store) Count() (int, error) {
	dates, err := s.Dates()
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

func clampSentiment(record *models.DigestRecord) {
	s := &record.Digest.Sentiment
	lo, hi := models.SentimentBand(s.Label)
	if s.Position < lo {
		slog.Warn("[Store] sentiment position below band, clamping",
			slog.String("label", s.Label), slog.Int("position", s.Position))
		s.Position = lo
	}
	if s.Position > hi {
		slog.Warn("[Store] sentiment position above band, clamping",
			slog.String("label", s.Label), slog.Int("position", s.Position))
		s.Position = hi
	}
}

// applyDefaults centralizes the optional-field contract for persisted
// records: absent sentiment label reads as Cautious, absent or zero
// position as the label's band midpoint, nil stories as empty.
func applyDefaults(record *models.DigestRecord) {
	s := &record.Digest.Sentiment
	if s.Label == "" {
		s.Label = models.SentimentCautious
	}
	if s.Position == 0 {
		switch s.Label {
		case models.SentimentRiskOff:
			s.Position = 20
		case models.SentimentRiskOn:
			s.Position = 80
		default:
			s.Position = 50
		}
	}
	if record.Digest.Stories == nil {
		record.Digest.Stories = []models.Story{}
	}
}
