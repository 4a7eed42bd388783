package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/adriansoto/mexbrief/config"
	"github.com/adriansoto/mexbrief/internal/models"
)

// Issue bundles everything one rendered edition needs.
type Issue struct {
	Digest      models.Digest
	Tickers     []models.Ticker
	Currency    []models.CurrencyRow
	Weather     models.WeatherSnapshot
	WeekStories []models.WeekStory
	IssueNumber int
	Date        time.Time
}

type emailData struct {
	Issue
	Name      string
	Tagline   string
	Author    string
	Byline    string
	DateLine  string
	WeekLabel string
}

var emailFuncs = template.FuncMap{
	"sentimentLabels": func() []string {
		return []string{models.SentimentRiskOff, models.SentimentCautious, models.SentimentRiskOn}
	},
	"tickerColor": func(direction string) string {
		switch direction {
		case models.DirectionUp:
			return "#6abf7b"
		case models.DirectionDown:
			return "#d4695a"
		default:
			return "#888888"
		}
	},
	"changeColor": func(class string) string {
		switch class {
		case "chg-up":
			return "#4a9e6a"
		case "chg-down":
			return "#b84a3a"
		default:
			return "#aab4bc"
		}
	},
	"sentimentPill": func(label, active string) template.CSS {
		if label != active {
			return "background:transparent; color:#bbc8d0; border:1px solid #dde3e8;"
		}
		switch label {
		case models.SentimentRiskOff:
			return "background:#fde8e6; color:#b84a3a; border:1px solid #f0c0ba;"
		case models.SentimentRiskOn:
			return "background:#e6f4ec; color:#2e7a4a; border:1px solid #b0d8c0;"
		default:
			return "background:#fef3e2; color:#9a6a1a; border:1px solid #f0d8a0;"
		}
	},
	"dotColor": func(active bool) string {
		if active {
			return "#3a4a54"
		}
		return "#c8d0d6"
	},
}

var emailTemplate = template.Must(template.New("email").Funcs(emailFuncs).Parse(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1.0"/>
  <title>{{.Name}}</title>
</head>
<body style="margin:0; padding:0; background:#dde3e8;">
<table width="100%" cellpadding="0" cellspacing="0" border="0" style="background:#dde3e8;">
  <tr>
    <td align="center" style="padding:8px 16px 32px;">
      <table width="600" cellpadding="0" cellspacing="0" border="0" style="max-width:600px; width:100%; background:#f0f3f5; border:1px solid #cdd4d9;">
        <tr><td style="padding:36px 48px 28px; border-bottom:2px solid #1a1a1a;">
          <p style="margin:0 0 10px 0; font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:3px; text-transform:uppercase; color:#999999;">{{.Tagline}}</p>
          <p style="margin:0 0 14px 0; font-family:Georgia,serif; font-size:34px; font-weight:bold; color:#1a1a1a; line-height:1.1;">{{.Name}}</p>
          <table width="100%" cellpadding="0" cellspacing="0" border="0"><tr>
            <td style="font-family:Arial,sans-serif; font-size:10px; color:#888888; letter-spacing:1px;">{{.DateLine}}</td>
            <td align="right" style="font-family:Arial,sans-serif; font-size:10px; color:#888888; letter-spacing:1px;">ISSUE #{{.IssueNumber}}</td>
          </tr></table>
        </td></tr>
        <tr><td style="background:#1a1a1a; border-bottom:3px solid #f0f3f5; padding:2px 32px;">
          <table width="100%" cellpadding="0" cellspacing="0" border="0"><tr>
{{range $i, $t := .Tickers}}            <td style="{{if $i}}border-left:1px solid #2e2e2e; {{end}}padding:10px 16px; text-align:center; vertical-align:middle;">
              <span style="display:block; font-family:Arial,sans-serif; font-size:8px; font-weight:bold; letter-spacing:2px; text-transform:uppercase; color:#555555; margin-bottom:4px;">{{$t.Label}}</span>
              <span style="font-family:Arial,sans-serif; font-size:12px; color:#d4cfc8;">{{$t.Value}}</span>
              <span style="font-family:Arial,sans-serif; font-size:10px; color:{{tickerColor $t.Direction}}; margin-left:4px;">{{$t.Change}}</span>
            </td>
{{end}}          </tr></table>
        </td></tr>
        <tr><td style="background:#1a1a1a; padding:10px 48px; margin-top:3px;">
          <table width="100%" cellpadding="0" cellspacing="0" border="0"><tr>
            <td style="font-family:Arial,sans-serif; font-size:11px; font-weight:bold; color:#f5f2ed; white-space:nowrap;">{{.Weather.City}}</td>
            <td style="font-family:Arial,sans-serif; font-size:11px; color:#cccccc; padding-left:16px; white-space:nowrap;">{{.Weather.HighLow}}</td>
            <td style="font-family:Arial,sans-serif; font-size:11px; color:#cccccc; padding-left:16px; white-space:nowrap;">{{.Weather.Humidity}}</td>
            <td align="right" style="font-family:Arial,sans-serif; font-size:10px; color:#666666; font-style:italic;">{{.Weather.Desc}}</td>
          </tr></table>
        </td></tr>
        <tr><td style="padding:28px 48px;">
          <p style="margin:0 0 12px 0; font-family:Georgia,serif; font-style:italic; font-size:15px; color:#444444; line-height:1.8;">{{.Digest.EditorNote}}</p>
          <p style="margin:0; font-family:Arial,sans-serif; font-size:10px; color:#999999; letter-spacing:1px; text-transform:uppercase;">&#8212; {{.Byline}}</p>
        </td></tr>
        <tr><td style="padding:24px 48px;">
          <table cellpadding="0" cellspacing="0" border="0"><tr>
            <td style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:2px; text-transform:uppercase; color:#aab4bc; vertical-align:middle; padding-right:12px; white-space:nowrap;">Sentiment</td>
{{$active := .Digest.Sentiment.Label}}{{range $label := sentimentLabels}}            <td style="padding-right:8px; white-space:nowrap;">
              <span style="display:inline-block; {{sentimentPill $label $active}} padding:5px 14px; border-radius:20px; font-family:Arial,sans-serif; font-size:10px; font-weight:bold; letter-spacing:1px; text-transform:uppercase;">{{$label}}</span>
            </td>
{{end}}          </tr></table>
          <p style="margin:14px 0 0 0; font-family:Georgia,serif; font-style:italic; font-size:13px; color:#555555; line-height:1.7;">{{.Digest.Sentiment.Context}}</p>
        </td></tr>
{{range .Digest.Stories}}        <tr><td style="padding:24px 48px; border-top:1px solid #cdd4d9;">
          <p style="margin:0 0 6px 0;">
            <span style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:2px; text-transform:uppercase; color:#999999;">{{.Source}}</span>
            <span style="font-family:Arial,sans-serif; font-size:8px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; border:1px solid #cdd4d9; padding:2px 6px; margin-left:8px;">{{.Tag}}</span>
          </p>
          <p style="margin:0 0 10px 0; font-family:Georgia,serif; font-size:20px; font-weight:bold; color:#1a1a1a; line-height:1.3;">{{.Headline}}</p>
          <p style="margin:0 0 10px 0; font-family:Arial,sans-serif; font-size:13px; color:#555555; line-height:1.75;">{{.Body}}</p>
          <a href="{{.URL}}" style="font-family:Arial,sans-serif; font-size:10px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#1a1a1a; text-decoration:none; border-bottom:1px solid #1a1a1a; padding-bottom:1px;">Read more &#8594;</a>
        </td></tr>
{{end}}        <tr><td style="padding:24px 48px; border-top:1px solid #cdd4d9;">
          <p style="margin:0 0 14px 0; font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:2.5px; text-transform:uppercase; color:#aab4bc;">Currency Table</p>
          <table width="100%" cellpadding="0" cellspacing="0" border="0">
            <tr>
              <th align="left" style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; padding:0 0 8px 0; border-bottom:1px solid #cdd4d9;">Pair</th>
              <th align="right" style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; padding:0 0 8px 0; border-bottom:1px solid #cdd4d9;">Rate</th>
              <th align="right" style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; padding:0 0 8px 12px; border-bottom:1px solid #cdd4d9;">1D</th>
              <th align="right" style="font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; padding:0 0 8px 12px; border-bottom:1px solid #cdd4d9;">1W</th>
            </tr>
{{range .Currency}}            <tr>
              <td style="font-family:Arial,sans-serif; font-size:12px; font-weight:bold; color:#1a1a1a; padding:9px 0; border-bottom:1px solid #e4e9ec;">{{.Pair}}</td>
              <td align="right" style="font-family:Arial,sans-serif; font-size:12px; color:#3a4a54; padding:9px 0; border-bottom:1px solid #e4e9ec;">{{.Rate}}</td>
              <td align="right" style="font-family:Arial,sans-serif; font-size:11px; color:{{changeColor .ChangeDay.Class}}; padding:9px 0 9px 12px; border-bottom:1px solid #e4e9ec;">{{.ChangeDay.Text}}</td>
              <td align="right" style="font-family:Arial,sans-serif; font-size:11px; color:{{changeColor .ChangeWk.Class}}; padding:9px 0 9px 12px; border-bottom:1px solid #e4e9ec;">{{.ChangeWk.Text}}</td>
            </tr>
{{end}}          </table>
        </td></tr>
        <tr><td style="background:#e8edf0; padding:28px 48px;">
          <p style="margin:12px 0; font-family:Georgia,serif; font-style:italic; font-size:15px; color:#3a4a54; line-height:1.75;">&#8220;{{.Digest.Quote.Text}}&#8221;</p>
          <p style="margin:0; font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#8a9aa4;">{{.Digest.Quote.Attribution}}</p>
        </td></tr>
{{if .WeekStories}}        <tr><td style="padding:24px 48px; border-top:1px solid #cdd4d9;">
          <p style="margin:0 0 18px 0; font-family:Arial,sans-serif; font-size:9px; font-weight:bold; letter-spacing:2.5px; text-transform:uppercase; color:#aab4bc;">Week in Review &middot; {{.WeekLabel}}</p>
          <table width="100%" cellpadding="0" cellspacing="0" border="0">
{{range .WeekStories}}            <tr>
              <td width="44" style="text-align:center; vertical-align:top; padding-bottom:20px;">
                <p style="margin:0 0 5px 0; font-family:Arial,sans-serif; font-size:8px; font-weight:bold; letter-spacing:1px; text-transform:uppercase; color:#aab4bc;">{{.Day}}</p>
                <span style="display:inline-block; width:10px; height:10px; border-radius:50%; background:{{dotColor .Active}};"></span>
              </td>
              <td style="padding-left:14px; padding-bottom:20px; vertical-align:top; border-left:1px solid #dde3e8;">
                <p style="margin:0 0 5px 0;"><span style="font-family:Arial,sans-serif; font-size:8px; font-weight:bold; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; border:1px solid #cdd4d9; padding:2px 6px;">{{.Tag}}</span></p>
                <p style="margin:0 0 4px 0; font-family:Georgia,serif; font-size:14px; font-weight:bold; color:#1a1a1a; line-height:1.35;">{{.Headline}}</p>
                <p style="margin:0; font-family:Arial,sans-serif; font-size:12px; color:#777777; line-height:1.65;">{{.Body}}</p>
              </td>
            </tr>
{{end}}          </table>
        </td></tr>
{{end}}        <tr><td style="background:#1a1a1a; padding:22px 48px;">
          <table width="100%" cellpadding="0" cellspacing="0" border="0"><tr>
            <td style="font-family:Georgia,serif; font-size:14px; color:#f5f2ed;">{{.Name}}</td>
            <td align="right" style="font-family:Arial,sans-serif; font-size:10px; color:#666666; letter-spacing:1px;">by {{.Author}} &middot; Unsubscribe</td>
          </tr></table>
        </td></tr>
      </table>
    </td>
  </tr>
</table>
</body>
</html>
`))

// BuildHTML renders the Gmail-safe table-layout edition.
func BuildHTML(issue Issue) (string, error) {
	data := emailData{
		Issue:    issue,
		Name:     config.NewsletterName,
		Tagline:  config.NewsletterTagline,
		Author:   config.AuthorName,
		Byline:   Byline(issue.Date),
		DateLine: strings.ToUpper(issue.Date.Format("Monday, January 02, 2006")),
	}
	if len(issue.WeekStories) > 0 {
		offset := (int(issue.Date.Weekday()) + 6) % 7
		monday := issue.Date.AddDate(0, 0, -offset)
		friday := monday.AddDate(0, 0, 4)
		data.WeekLabel = monday.Format("02 Jan") + "–" + friday.Format("02 Jan, 2006")
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildPlain renders the text/plain alternative part.
func BuildPlain(digest models.Digest, date time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — %s\n%s\n\n", config.NewsletterName, date.Format("January 02, 2006"), strings.Repeat("=", 40))

	if digest.EditorNote != "" {
		sb.WriteString(digest.EditorNote + "\n\n")
	}
	if digest.Sentiment.Label != "" {
		fmt.Fprintf(&sb, "Market sentiment: %s — %s\n\n", digest.Sentiment.Label, digest.Sentiment.Context)
	}
	for _, s := range digest.Stories {
		fmt.Fprintf(&sb, "[%s] %s\n%s\nRead more: %s\n\n", s.Source, s.Headline, s.Body, s.URL)
	}
	if digest.Quote.Text != "" {
		fmt.Fprintf(&sb, "%q\n— %s\n\n", digest.Quote.Text, digest.Quote.Attribution)
	}
	fmt.Fprintf(&sb, "— %s\n", config.AuthorName)
	return sb.String()
}
