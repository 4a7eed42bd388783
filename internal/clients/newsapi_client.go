package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/adriansoto/mexbrief/internal/models"
)

const (
	NEWS_API_ENDPOINT = "https://newsapi.org/v2/everything"
	MAX_RETRIES       = 3
	INITIAL_BACKOFF   = 1 * time.Second
	MAX_BACKOFF       = 8 * time.Second

	newsAPITimeout = 10 * time.Second
)

var (
	newsAPIInstance *NewsAPIClient
	newsAPIOnce     sync.Once
)

type NewsAPIClient struct {
	Client   *http.Client
	APIKey   string
	Endpoint string
}

func GetNewsAPIClient() *NewsAPIClient {
	newsAPIOnce.Do(func() {
		newsAPIInstance = &NewsAPIClient{
			Client:   &http.Client{Timeout: newsAPITimeout},
			APIKey:   os.Getenv("NEWS_API_KEY"),
			Endpoint: NEWS_API_ENDPOINT,
		}
	})
	return newsAPIInstance
}

func (n *NewsAPIClient) Name() string { return "NewsAPI" }

// Search fetches up to limit hits for one topic query, newest first.
// Rate-limit and server errors are retried with doubling backoff;
// credential errors are not.
func (n *NewsAPIClient) Search(ctx context.Context, topic, language string, limit int) ([]models.Hit, error) {
	if n.APIKey == "" {
		return nil, errors.New("[NewsAPIClient] API key is missing")
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("language", language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", n.APIKey)
	reqURL := n.Endpoint + "?" + params.Encode()

	var lastErr error
	backoff := INITIAL_BACKOFF

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		res, err := n.Client.Do(req)
		if err != nil {
			slog.Warn("[NewsAPIClient] request failed",
				slog.String("topic", topic),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
		} else {
			hits, retry, err := n.handleResponse(res, topic)
			if !retry {
				return hits, err
			}
			lastErr = err
			slog.Warn("[NewsAPIClient] retrying",
				slog.String("topic", topic),
				slog.Duration("backoff", backoff),
				slog.Int("attempt", attempt))
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return nil, lastErr
}

func (n *NewsAPIClient) handleResponse(res *http.Response, topic string) (hits []models.Hit, retry bool, err error) {
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, false, err
		}
		var response models.NewsAPIEverythingResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, false, err
		}
		for _, a := range response.Articles {
			hits = append(hits, models.Hit{
				Title:       a.Title,
				Description: a.Description,
				SourceName:  a.Source.Name,
				URL:         a.URL,
			})
		}
		slog.Info("[NewsAPIClient] fetched hits",
			slog.String("topic", topic), slog.Int("count", len(hits)))
		return hits, false, nil
	case http.StatusUnauthorized:
		return nil, false, errors.New("[NewsAPIClient] invalid API key, check credentials")
	case http.StatusTooManyRequests:
		io.Copy(io.Discard, res.Body)
		return nil, true, errors.New("[NewsAPIClient] rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return nil, true, errors.New("[NewsAPIClient] server error " + strconv.Itoa(res.StatusCode))
	default:
		return nil, false, errors.New("[NewsAPIClient] unexpected status " + strconv.Itoa(res.StatusCode))
	}
}
