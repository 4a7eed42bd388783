package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adriansoto/mexbrief/internal/models"
)

const (
	// One initial attempt plus three retries, 30s/60s/90s apart, for
	// transient upstream overload only. Everything else is fatal.
	maxRetries  = 3
	backoffUnit = 30 * time.Second
)

// Backend is one text-generation service able to produce a digest.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	// IsTransient reports whether an error is an overload signal worth
	// retrying.
	IsTransient(err error) bool
}

type Summarizer struct {
	Backend Backend
	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func New(backend Backend) *Summarizer {
	return &Summarizer{Backend: backend, sleep: time.Sleep}
}

// Summarize turns the collected articles into one Digest. Transient
// upstream overload is retried with linearly increasing backoff; any
// other failure, retry exhaustion, or a malformed reply aborts the run.
// No partial digest is ever returned.
func (s *Summarizer) Summarize(ctx context.Context, articles []models.Article) (*models.Digest, error) {
	prompt := BuildPrompt(articles)

	var raw string
	var err error
	for attempt := 0; ; attempt++ {
		slog.Info("[Summarizer] requesting digest",
			slog.String("backend", s.Backend.Name()),
			slog.Int("articles", len(articles)),
			slog.Int("attempt", attempt+1))

		raw, err = s.Backend.Complete(ctx, prompt)
		if err == nil {
			break
		}
		if !s.Backend.IsTransient(err) || attempt >= maxRetries {
			return nil, fmt.Errorf("[Summarizer] digest generation failed: %w", err)
		}

		backoff := Backoff(attempt)
		slog.Warn("[Summarizer] upstream overloaded, retrying",
			slog.Duration("backoff", backoff),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		s.sleep(backoff)
	}

	digest, err := ParseDigest(raw)
	if err != nil {
		return nil, fmt.Errorf("[Summarizer] malformed digest response: %w", err)
	}

	ReconcileSentiment(digest)
	return digest, nil
}

// Backoff returns the wait before retry attempt+1: 30s, 60s, 90s.
func Backoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * backoffUnit
}

// ParseDigest strips any markdown fencing around the reply and
// unmarshals it. A parse failure is fatal, never retried.
func ParseDigest(raw string) (*models.Digest, error) {
	cleaned := CleanResponse(raw)

	var digest models.Digest
	if err := json.Unmarshal([]byte(cleaned), &digest); err != nil {
		return nil, err
	}
	return &digest, nil
}

// CleanResponse removes markdown code fences and surrounding prose so
// only the JSON object remains.
func CleanResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
