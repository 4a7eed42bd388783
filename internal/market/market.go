package market

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/adriansoto/mexbrief/config"
	"github.com/adriansoto/mexbrief/internal/clients"
	"github.com/adriansoto/mexbrief/internal/models"
)

// Aggregator produces the day's ticker list, currency table and weather
// reading. Every item fails independently to a placeholder; nothing in
// this package returns an error to the pipeline.
type Aggregator struct {
	Yahoo   *clients.YahooClient
	Banxico *clients.BanxicoClient
	Meteo   *clients.OpenMeteoClient
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		Yahoo:   clients.GetYahooClient(),
		Banxico: clients.GetBanxicoClient(),
		Meteo:   clients.GetOpenMeteoClient(),
	}
}

func placeholderTicker(label string) models.Ticker {
	return models.Ticker{
		Label:     label,
		Value:     models.PlaceholderValue,
		Change:    "",
		Direction: models.DirectionFlat,
	}
}

// FetchTickers resolves each configured symbol to a display row. CETES
// 28D comes from Banxico, everything else from Yahoo Finance.
func (a *Aggregator) FetchTickers(ctx context.Context) []models.Ticker {
	var tickers []models.Ticker
	for _, ts := range config.TickerSymbols {
		switch {
		case ts.Label == "CETES 28D":
			tickers = append(tickers, a.fetchCetes(ctx, ts.Label))
		case ts.Symbol == "":
			tickers = append(tickers, placeholderTicker(ts.Label))
		default:
			tickers = append(tickers, a.fetchYahooTicker(ctx, ts.Label, ts.Symbol))
		}
	}
	return tickers
}

func (a *Aggregator) fetchYahooTicker(ctx context.Context, label, symbol string) models.Ticker {
	series, err := a.Yahoo.FetchSeries(ctx, symbol, "2d")
	if err != nil {
		slog.Warn("[Market] ticker fetch failed",
			slog.String("label", label), slog.String("error", err.Error()))
		return placeholderTicker(label)
	}

	price := series.Price
	prev := series.PreviousClose
	if prev == 0 {
		prev = price
	}
	var pctChg float64
	if prev != 0 {
		pctChg = (price - prev) / prev * 100
	}

	direction := models.DirectionUp
	arrow := "▲"
	if pctChg < 0 {
		direction = models.DirectionDown
		arrow = "▼"
	}

	var value string
	switch {
	case strings.Contains(label, "IPC") || strings.Contains(label, "BMV"):
		value = formatThousands(price, 2)
	case label == "S&P 500":
		value = formatThousands(price, 0)
	default:
		value = fmt.Sprintf("%.4f", price)
	}

	return models.Ticker{
		Label:     label,
		Value:     value,
		Change:    fmt.Sprintf("%s %.1f%%", arrow, math.Abs(pctChg)),
		Direction: direction,
	}
}

func (a *Aggregator) fetchCetes(ctx context.Context, label string) models.Ticker {
	latest, previous, err := a.Banxico.FetchLatestRate(ctx, clients.CETES_28D_SERIES)
	if err != nil {
		slog.Warn("[Market] CETES fetch failed", slog.String("error", err.Error()))
		return placeholderTicker(label)
	}

	chg := latest - previous
	direction := models.DirectionUp
	arrow := "▲"
	if chg < 0 {
		direction = models.DirectionDown
		arrow = "▼"
	}

	return models.Ticker{
		Label:     label,
		Value:     fmt.Sprintf("%.2f%%", latest),
		Change:    fmt.Sprintf("%s %.2fpp", arrow, math.Abs(chg)),
		Direction: direction,
	}
}

func placeholderCurrencyRow(pair string) models.CurrencyRow {
	flat := models.ChangeCell{Text: models.PlaceholderValue, Class: "chg-flat"}
	return models.CurrencyRow{
		Pair:      pair,
		Rate:      models.PlaceholderValue,
		ChangeDay: flat,
		ChangeWk:  flat,
	}
}

// FetchCurrencyTable builds the EUR cross table with 1-day and 1-week
// change columns.
func (a *Aggregator) FetchCurrencyTable(ctx context.Context) []models.CurrencyRow {
	var rows []models.CurrencyRow
	for _, currency := range config.CurrencyOrder {
		pair := "EUR / " + currency
		symbol := config.CurrencyPairs[currency]

		series, err := a.Yahoo.FetchSeries(ctx, symbol, "5d")
		if err != nil || series.Price == 0 {
			if err != nil {
				slog.Warn("[Market] currency fetch failed",
					slog.String("pair", pair), slog.String("error", err.Error()))
			}
			rows = append(rows, placeholderCurrencyRow(pair))
			continue
		}

		rate := series.Price
		prevDay := rate
		if n := len(series.Closes); n >= 2 {
			prevDay = series.Closes[n-2]
		}
		prevWeek := rate
		if len(series.Closes) >= 5 {
			prevWeek = series.Closes[0]
		}

		rows = append(rows, models.CurrencyRow{
			Pair:      pair,
			Rate:      fmt.Sprintf("%.4f", rate),
			ChangeDay: changeCell(relChange(rate, prevDay)),
			ChangeWk:  changeCell(relChange(rate, prevWeek)),
		})
	}
	return rows
}

func relChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func changeCell(pct float64) models.ChangeCell {
	arrow := "▲"
	class := "chg-up"
	if pct < 0 {
		arrow = "▼"
		class = "chg-down"
	}
	return models.ChangeCell{
		Text:  fmt.Sprintf("%s %.2f%%", arrow, math.Abs(pct)),
		Class: class,
	}
}

// FetchWeather returns the full current reading or the full
// placeholder, never a mix.
func (a *Aggregator) FetchWeather(ctx context.Context) models.WeatherSnapshot {
	current, err := a.Meteo.FetchCurrent(ctx, config.WeatherLat, config.WeatherLon)
	if err != nil {
		slog.Warn("[Market] weather fetch failed", slog.String("error", err.Error()))
		return models.WeatherSnapshot{
			City:     config.WeatherCity,
			Temp:     models.PlaceholderValue,
			HighLow:  models.PlaceholderValue,
			Humidity: models.PlaceholderValue,
			Desc:     "Weather unavailable",
		}
	}

	return models.WeatherSnapshot{
		City:     config.WeatherCity,
		Temp:     fmt.Sprintf("%d°C", int(math.Round(*current.Temperature))),
		HighLow:  fmt.Sprintf("%d°C / %d°C", int(math.Round(*current.TempMax)), int(math.Round(*current.TempMin))),
		Humidity: fmt.Sprintf("Humedad %d%%", int(math.Round(*current.Humidity))),
		Desc:     weatherDescription(*current.WeatherCode),
	}
}

func weatherDescription(code int) string {
	switch code {
	case 0:
		return "Cielo despejado"
	case 1, 2, 3:
		return "Parcialmente nublado"
	case 45, 48:
		return "Niebla"
	case 51, 53, 55:
		return "Llovizna"
	case 61, 63, 65:
		return "Lluvia"
	case 71, 73, 75:
		return "Nieve"
	case 80, 81, 82:
		return "Chubascos"
	case 95, 96, 99:
		return "Tormenta"
	default:
		return "Condiciones variables"
	}
}

// formatThousands renders a price with comma grouping, matching the
// newsletter's ticker strip.
func formatThousands(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var sb strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}

	out := sb.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
