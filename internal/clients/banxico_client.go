package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	BANXICO_SERIES_ENDPOINT = "https://www.banxico.org.mx/SieAPIRest/service/v1/series"
	CETES_28D_SERIES        = "SF43936" // CETES 28 días, tasa de rendimiento

	banxicoTimeout = 8 * time.Second
)

var (
	banxicoInstance *BanxicoClient
	banxicoOnce     sync.Once
)

type BanxicoClient struct {
	Client   *http.Client
	Token    string
	Endpoint string
}

func GetBanxicoClient() *BanxicoClient {
	banxicoOnce.Do(func() {
		banxicoInstance = &BanxicoClient{
			Client:   &http.Client{Timeout: banxicoTimeout},
			Token:    os.Getenv("BANXICO_API_KEY"),
			Endpoint: BANXICO_SERIES_ENDPOINT,
		}
	})
	return banxicoInstance
}

type banxicoResponse struct {
	Bmx struct {
		Series []struct {
			Datos []struct {
				Dato string `json:"dato"`
			} `json:"datos"`
		} `json:"series"`
	} `json:"bmx"`
}

// FetchLatestRate returns the latest and previous observations of a SIE
// series, in percentage points.
func (b *BanxicoClient) FetchLatestRate(ctx context.Context, series string) (latest, previous float64, err error) {
	if b.Token == "" {
		return 0, 0, errors.New("[BanxicoClient] BANXICO_API_KEY is missing")
	}

	reqURL := fmt.Sprintf("%s/%s/datos/oportuno", b.Endpoint, series)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Bmx-Token", b.Token)

	res, err := b.Client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("[BanxicoClient] unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, 0, err
	}

	var parsed banxicoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, 0, err
	}
	if len(parsed.Bmx.Series) == 0 || len(parsed.Bmx.Series[0].Datos) == 0 {
		return 0, 0, errors.New("[BanxicoClient] empty series data")
	}

	datos := parsed.Bmx.Series[0].Datos
	latest, err = strconv.ParseFloat(datos[len(datos)-1].Dato, 64)
	if err != nil {
		return 0, 0, err
	}
	previous = latest
	if len(datos) >= 2 {
		if p, err := strconv.ParseFloat(datos[len(datos)-2].Dato, 64); err == nil {
			previous = p
		}
	}
	return latest, previous, nil
}
