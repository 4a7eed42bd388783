package config

// Newsletter identity. Safe to commit; secrets stay in the environment.
const (
	NewsletterName    = "Mexico Finance Brief"
	NewsletterTagline = "Daily Intelligence"
	AuthorName        = "Adrian"
)

// News preferences.
var Topics = []string{"finance", "economy", "Mexico", "trade", "markets"}

const (
	Language            = "en"
	MaxArticlesPerTopic = 5
	MaxArticleChars     = 3000
)

// TickerSymbol maps a display label to a Yahoo Finance symbol.
// An empty symbol renders as a placeholder row.
type TickerSymbol struct {
	Label  string
	Symbol string
}

var TickerSymbols = []TickerSymbol{
	{Label: "USD/MXN", Symbol: "MXN=X"},
	{Label: "S&P 500", Symbol: "^GSPC"},
	{Label: "CETES 28D", Symbol: ""}, // fetched from Banxico SIE, not Yahoo
	{Label: "IPC BMV", Symbol: "^MXX"},
}

// Currency table: EUR crosses shown with 1-day and 1-week change.
var CurrencyPairs = map[string]string{
	"USD": "EURUSD=X",
	"GBP": "EURGBP=X",
	"CHF": "EURCHF=X",
	"JPY": "EURJPY=X",
}

// CurrencyOrder keeps the table rows deterministic; map iteration is not.
var CurrencyOrder = []string{"USD", "GBP", "CHF", "JPY"}

// Weather (Open-Meteo, no API key needed).
const (
	WeatherLat  = 19.4326
	WeatherLon  = -99.1332
	WeatherCity = "Mexico City"
)

// Storage paths, relative to the working directory so digests and the
// archive can be committed together.
const (
	DigestDir  = "digests"
	ArchiveDir = "docs"
)

// Rotating pen names for the daily byline.
var AuthorNames = []string{
	"Drew Downing",
	"Cora Lation",
	"Russell Bearings",
	"Hal F. Life",
	"Carrie Trade",
	"Bea Rish",
	"Buck N. Yields",
	"Ray Tio",
	"Stan Dard Deviation",
	"Cliff N. Overhang",
	"Mort I. Fication",
	"Barry Cade",
	"Rex Cession",
	"Hugh Liquidity",
	"Art Bitrage",
	"Bill Ateral",
	"Mac Roeconomics",
	"Lev Erage",
	"Cal Lateral",
	"Phil Ation",
	"Chip Deflation",
	"Vera Tility",
}

var AuthorTitles = []string{
	"Director of Mildly Concerning Developments",
	"Senior Fellow, Bureau of Controlled Panic",
	"Chairman of the Committee on 'It's Fine'",
	"Principal Strategist, Gradual Decay",
	"Global Head of Conditional Optimism",
	"Custodian of Forward Guidance and Other Myths",
	"Deputy Undersecretary of Controlled Descent",
	"Executive Director of Fragile Equilibrium",
	"Chief Architect of Confident Uncertainty",
	"Senior Fellow, Institute of Permanent Volatility",
	"Visiting Scholar, Department of Inevitable Outcomes",
	"Head of Preemptive Disappointment",
	"Chief Correspondent, Bureau of Things Already Priced In",
	"Director of Soft Landings (Emeritus)",
	"Senior Analyst, Office of Delayed Consequences",
	"Minister of Transitory Phenomena",
	"Head of Quantitative Vibes",
	"Assistant to the Regional Hegemon",
	"Chief of Staff, Monetary Policy Theater",
	"Commissioner of Yield Curve Interpretive Dance",
	"Secretary General of the Ad Hoc Liquidity Committee",
	"Distinguished Chair of Optimism Suppression",
	"Lead Correspondent, The Structural Adjustment Beat",
	"Director of Things That Are Technically Not a Crisis",
	"Senior Vice President of Premature Conclusions",
	"Keeper of the Dot Plot",
	"Ambassador-at-Large for Unintended Consequences",
}
