package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	OPEN_METEO_ENDPOINT = "https://api.open-meteo.com/v1/forecast"

	openMeteoTimeout = 8 * time.Second
)

var (
	openMeteoInstance *OpenMeteoClient
	openMeteoOnce     sync.Once
)

type OpenMeteoClient struct {
	Client   *http.Client
	Endpoint string
}

func GetOpenMeteoClient() *OpenMeteoClient {
	openMeteoOnce.Do(func() {
		openMeteoInstance = &OpenMeteoClient{
			Client:   &http.Client{Timeout: openMeteoTimeout},
			Endpoint: OPEN_METEO_ENDPOINT,
		}
	})
	return openMeteoInstance
}

// CurrentWeather is the subset of the Open-Meteo forecast the digest
// uses. Pointer fields let the caller distinguish absent from zero; a
// partially populated reading is treated as a failed fetch.
type CurrentWeather struct {
	Temperature *float64
	Humidity    *float64
	WeatherCode *int
	TempMax     *float64
	TempMin     *float64
}

type openMeteoResponse struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode *int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (o *OpenMeteoClient) FetchCurrent(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code")
	params.Set("daily", "temperature_2m_max,temperature_2m_min")
	params.Set("timezone", "America/Mexico_City")
	params.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := o.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[OpenMeteoClient] unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var parsed openMeteoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	weather := &CurrentWeather{
		Temperature: parsed.Current.Temperature,
		Humidity:    parsed.Current.Humidity,
		WeatherCode: parsed.Current.WeatherCode,
	}
	if len(parsed.Daily.TempMax) > 0 {
		weather.TempMax = &parsed.Daily.TempMax[0]
	}
	if len(parsed.Daily.TempMin) > 0 {
		weather.TempMin = &parsed.Daily.TempMin[0]
	}

	if weather.Temperature == nil || weather.Humidity == nil || weather.WeatherCode == nil ||
		weather.TempMax == nil || weather.TempMin == nil {
		return nil, errors.New("[OpenMeteoClient] incomplete weather payload")
	}
	return weather, nil
}
