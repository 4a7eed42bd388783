package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	YAHOO_CHART_ENDPOINT = "https://query1.finance.yahoo.com/v8/finance/chart"

	yahooTimeout   = 8 * time.Second
	yahooUserAgent = "Mozilla/5.0"
)

var (
	yahooInstance *YahooClient
	yahooOnce     sync.Once
)

type YahooClient struct {
	Client   *http.Client
	Endpoint string
}

func GetYahooClient() *YahooClient {
	yahooOnce.Do(func() {
		yahooInstance = &YahooClient{
			Client:   &http.Client{Timeout: yahooTimeout},
			Endpoint: YAHOO_CHART_ENDPOINT,
		}
	})
	return yahooInstance
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// QuoteSeries holds the current price plus the non-null daily closes of
// the requested range, oldest first.
type QuoteSeries struct {
	Price         float64
	PreviousClose float64
	Closes        []float64
}

// FetchSeries loads the daily chart for one symbol over the given range
// (e.g. "2d", "5d").
func (y *YahooClient) FetchSeries(ctx context.Context, symbol, chartRange string) (*QuoteSeries, error) {
	reqURL := fmt.Sprintf("%s/%s?interval=1d&range=%s", y.Endpoint, symbol, chartRange)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	res, err := y.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[YahooClient] unexpected status %d for %s", res.StatusCode, symbol)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var parsed yahooChartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, errors.New("[YahooClient] empty chart result for " + symbol)
	}

	result := parsed.Chart.Result[0]
	series := &QuoteSeries{
		Price:         result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.ChartPreviousClose,
	}
	for _, quote := range result.Indicators.Quote {
		for _, c := range quote.Close {
			if c != nil {
				series.Closes = append(series.Closes, *c)
			}
		}
	}

	slog.Debug("[YahooClient] fetched series",
		slog.String("symbol", symbol), slog.Int("closes", len(series.Closes)))
	return series, nil
}
