package models

// Direction flags for ticker and currency rows.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat" // placeholders only
)

// PlaceholderValue is substituted for any feed item that failed.
const PlaceholderValue = "—"

type Ticker struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Change    string `json:"change"`
	Direction string `json:"direction"`
}

// ChangeCell is one formatted change column in the currency table.
type ChangeCell struct {
	Text  string `json:"text"`
	Class string `json:"cls"`
}

type CurrencyRow struct {
	Pair      string     `json:"pair"`
	Rate      string     `json:"rate"`
	ChangeDay ChangeCell `json:"chg_1d"`
	ChangeWk  ChangeCell `json:"chg_1w"`
}

type MarketSnapshot struct {
	Tickers  []Ticker      `json:"tickers"`
	Currency []CurrencyRow `json:"currency"`
}

type WeatherSnapshot struct {
	City     string `json:"city"`
	Temp     string `json:"temp"`
	HighLow  string `json:"high_low"`
	Humidity string `json:"humidity"`
	Desc     string `json:"desc"`
}
