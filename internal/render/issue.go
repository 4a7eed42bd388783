package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/adriansoto/mexbrief/config"
)

// The web edition mirrors the email but may use modern CSS since it is
// only served from the archive, never sent through a mail client.
var issueTemplate = template.Must(template.New("issue").Funcs(emailFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Name}} — {{.DateLine}}</title>
  <link href="https://fonts.googleapis.com/css2?family=Playfair+Display:wght@700&family=DM+Sans:wght@400;500&display=swap" rel="stylesheet">
  <style>
    * { margin:0; padding:0; box-sizing:border-box; }
    body { background:#dde3e8; font-family:'DM Sans',sans-serif; padding:40px 16px; }
    .wrap { max-width:640px; margin:0 auto; background:#f0f3f5; border:1px solid #cdd4d9; }
    .header { padding:40px 48px 28px; border-bottom:2px solid #1a1a1a; }
    .pub-label { font-size:9px; font-weight:500; letter-spacing:3px; text-transform:uppercase; color:#999; margin-bottom:10px; }
    .pub-name { font-family:'Playfair Display',serif; font-size:36px; font-weight:700; color:#1a1a1a; line-height:1.1; margin-bottom:14px; }
    .pub-meta { display:flex; justify-content:space-between; font-size:10px; color:#888; letter-spacing:1px; }
    .ticker { background:#1a1a1a; padding:10px 48px; display:flex; justify-content:space-between; border-bottom:3px solid #f0f3f5; }
    .tick-item { text-align:center; flex:1; padding:6px 8px; border-left:1px solid #2e2e2e; }
    .tick-item:first-child { border-left:none; }
    .tick-label { display:block; font-size:8px; font-weight:500; letter-spacing:2px; text-transform:uppercase; color:#555; margin-bottom:4px; }
    .tick-val { font-size:12px; color:#d4cfc8; }
    .tick-chg { font-size:10px; margin-left:4px; }
    .weather { background:#1a1a1a; padding:9px 48px; display:flex; gap:20px; align-items:center; margin-top:3px; font-size:11px; color:#ccc; }
    .weather-city { font-weight:500; color:#f5f2ed; }
    .weather-desc { font-size:10px; color:#666; font-style:italic; margin-left:auto; }
    .note { padding:28px 48px; }
    .note p { font-family:Georgia,serif; font-style:italic; font-size:15px; color:#444; line-height:1.8; margin-bottom:12px; }
    .byline { font-size:10px; color:#999; letter-spacing:1px; text-transform:uppercase; }
    .section { padding:24px 48px; border-top:1px solid #cdd4d9; }
    .gauge { height:6px; background:linear-gradient(to right,#b84a3a,#e8a030,#4a9e6a); border-radius:3px; position:relative; margin:14px 0 8px; }
    .gauge-dot { position:absolute; top:-4px; width:14px; height:14px; border-radius:50%; background:#1a1a1a; border:3px solid #f0f3f5; }
    .sent-label { font-size:10px; font-weight:500; letter-spacing:1px; text-transform:uppercase; }
    .sent-context { font-family:Georgia,serif; font-style:italic; font-size:13px; color:#555; line-height:1.7; margin-top:10px; }
    .story-src { font-size:9px; font-weight:500; letter-spacing:2px; text-transform:uppercase; color:#999; }
    .story-tag { font-size:8px; font-weight:500; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; border:1px solid #cdd4d9; padding:2px 6px; margin-left:8px; }
    .story-headline { font-family:'Playfair Display',serif; font-size:20px; font-weight:700; color:#1a1a1a; line-height:1.3; margin:6px 0 10px; }
    .story-body { font-size:13px; color:#555; line-height:1.75; margin-bottom:10px; }
    .story-link { font-size:10px; font-weight:500; letter-spacing:1.5px; text-transform:uppercase; color:#1a1a1a; text-decoration:none; border-bottom:1px solid #1a1a1a; }
    table.fx { width:100%; border-collapse:collapse; }
    table.fx th { text-align:right; font-size:9px; font-weight:500; letter-spacing:1.5px; text-transform:uppercase; color:#aab4bc; padding-bottom:8px; border-bottom:1px solid #cdd4d9; }
    table.fx th:first-child { text-align:left; }
    table.fx td { text-align:right; font-size:12px; color:#3a4a54; padding:9px 0; border-bottom:1px solid #e4e9ec; }
    table.fx td:first-child { text-align:left; font-weight:500; color:#1a1a1a; }
    .quote { background:#e8edf0; padding:28px 48px; }
    .quote p { font-family:Georgia,serif; font-style:italic; font-size:15px; color:#3a4a54; line-height:1.75; margin:12px 0; }
    .quote .attr { font-size:9px; font-weight:500; letter-spacing:1.5px; text-transform:uppercase; color:#8a9aa4; font-style:normal; }
    .week-day { font-size:8px; font-weight:500; letter-spacing:1px; text-transform:uppercase; color:#aab4bc; margin-bottom:5px; }
    .week-row { display:flex; margin-bottom:20px; }
    .week-left { width:44px; text-align:center; }
    .week-dot { display:inline-block; width:10px; height:10px; border-radius:50%; }
    .week-right { flex:1; padding-left:14px; border-left:1px solid #dde3e8; }
    .footer { background:#1a1a1a; padding:22px 48px; display:flex; justify-content:space-between; align-items:center; }
    .footer-name { font-family:Georgia,serif; font-size:14px; color:#f5f2ed; }
    .footer-meta { font-size:10px; color:#666; letter-spacing:1px; }
    .footer-meta a { color:#666; text-decoration:none; }
  </style>
</head>
<body>
<div class="wrap">
  <div class="header">
    <div class="pub-label">{{.Tagline}}</div>
    <div class="pub-name">{{.Name}}</div>
    <div class="pub-meta"><span>{{.DateLine}}</span><span>ISSUE #{{.IssueNumber}}</span></div>
  </div>
  <div class="ticker">
{{range .Tickers}}    <div class="tick-item">
      <span class="tick-label">{{.Label}}</span>
      <span class="tick-val">{{.Value}}</span>
      <span class="tick-chg" style="color:{{tickerColor .Direction}};">{{.Change}}</span>
    </div>
{{end}}  </div>
  <div class="weather">
    <span class="weather-city">{{.Weather.City}}</span>
    <span>{{.Weather.HighLow}}</span>
    <span>{{.Weather.Humidity}}</span>
    <span class="weather-desc">{{.Weather.Desc}}</span>
  </div>
  <div class="note">
    <p>{{.Digest.EditorNote}}</p>
    <div class="byline">&#8212; {{.Byline}}</div>
  </div>
  <div class="section">
    <span class="sent-label" style="color:{{.SentimentColor}};">{{.Digest.Sentiment.Label}}</span>
    <div class="gauge"><span class="gauge-dot" style="left:calc({{.Digest.Sentiment.Position}}% - 7px);"></span></div>
    <div class="sent-context">{{.Digest.Sentiment.Context}}</div>
  </div>
{{range .Digest.Stories}}  <div class="section">
    <span class="story-src">{{.Source}}</span><span class="story-tag">{{.Tag}}</span>
    <div class="story-headline">{{.Headline}}</div>
    <div class="story-body">{{.Body}}</div>
    <a class="story-link" href="{{.URL}}">Read more &#8594;</a>
  </div>
{{end}}  <div class="section">
    <table class="fx">
      <tr><th>Pair</th><th>Rate</th><th>1D</th><th>1W</th></tr>
{{range .Currency}}      <tr>
        <td>{{.Pair}}</td><td>{{.Rate}}</td>
        <td style="color:{{changeColor .ChangeDay.Class}};">{{.ChangeDay.Text}}</td>
        <td style="color:{{changeColor .ChangeWk.Class}};">{{.ChangeWk.Text}}</td>
      </tr>
{{end}}    </table>
  </div>
  <div class="quote">
    <p>&#8220;{{.Digest.Quote.Text}}&#8221;</p>
    <div class="attr">{{.Digest.Quote.Attribution}}</div>
  </div>
{{if .WeekStories}}  <div class="section">
    <div class="pub-label">Week in Review &middot; {{.WeekLabel}}</div>
{{range .WeekStories}}    <div class="week-row">
      <div class="week-left">
        <div class="week-day">{{.Day}}</div>
        <span class="week-dot" style="background:{{dotColor .Active}};"></span>
      </div>
      <div class="week-right">
        <span class="story-tag" style="margin-left:0;">{{.Tag}}</span>
        <div class="story-headline" style="font-size:14px;">{{.Headline}}</div>
        <div class="story-body" style="font-size:12px; margin-bottom:0;">{{.Body}}</div>
      </div>
    </div>
{{end}}  </div>
{{end}}  <div class="footer">
    <span class="footer-name">{{.Name}}</span>
    <span class="footer-meta">by {{.Author}} &middot; <a href="index.html">Archive</a></span>
  </div>
</div>
</body>
</html>
`))

type issueData struct {
	emailData
	SentimentColor string
}

// BuildIssueHTML renders the self-contained web edition stored in the
// archive.
func BuildIssueHTML(issue Issue) (string, error) {
	data := issueData{
		emailData: emailData{
			Issue:    issue,
			Name:     config.NewsletterName,
			Tagline:  config.NewsletterTagline,
			Author:   config.AuthorName,
			Byline:   Byline(issue.Date),
			DateLine: strings.ToUpper(issue.Date.Format("Monday, January 02, 2006")),
		},
		SentimentColor: sentimentColor(issue.Digest.Sentiment.Label),
	}
	if len(issue.WeekStories) > 0 {
		offset := (int(issue.Date.Weekday()) + 6) % 7
		monday := issue.Date.AddDate(0, 0, -offset)
		friday := monday.AddDate(0, 0, 4)
		data.WeekLabel = monday.Format("02 Jan") + "–" + friday.Format("02 Jan, 2006")
	}

	var buf bytes.Buffer
	if err := issueTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sentimentColor(label string) string {
	switch label {
	case "Risk-Off":
		return "#b84a3a"
	case "Risk-On":
		return "#4a9e6a"
	default:
		return "#9a6a1a"
	}
}
