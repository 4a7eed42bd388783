package archive

import (
	"bytes"
	"encoding/json"
	"html/template"
	"time"

	"github.com/adriansoto/mexbrief/config"
	"github.com/adriansoto/mexbrief/internal/models"
	"github.com/adriansoto/mexbrief/internal/storage"
)

var sentimentColors = map[string]string{
	models.SentimentRiskOff:  "#b84a3a",
	models.SentimentCautious: "#9a6a1a",
	models.SentimentRiskOn:   "#4a9e6a",
}

const fallbackSentimentColor = "#aab4bc"

type indexCard struct {
	Filename       string
	Label          string
	IssueNumber    int
	Headline       string
	SentimentLabel string
	SentimentColor string
	SearchText     string
}

type indexPage struct {
	Name      string
	Author    string
	Cards     []indexCard
	ChartJSON template.JS
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Name}} — Archive</title>
  <link href="https://fonts.googleapis.com/css2?family=Playfair+Display:wght@700&family=DM+Sans:wght@400;500&display=swap" rel="stylesheet">
  <style>
    * { margin:0; padding:0; box-sizing:border-box; }
    body { background:#dde3e8; font-family:'DM Sans',sans-serif; padding:40px 16px; }
    .wrap { max-width:640px; margin:0 auto; }
    .masthead { background:#1a1a1a; padding:32px 36px; margin-bottom:24px; }
    .masthead-name { font-family:'Playfair Display',serif; font-size:28px; color:#f5f2ed; margin-bottom:4px; }
    .masthead-sub { font-size:10px; letter-spacing:2px; text-transform:uppercase; color:#555; }
    .search { width:100%; padding:12px 16px; margin-bottom:16px; border:1px solid #cdd4d9; background:#f0f3f5; font-family:'DM Sans',sans-serif; font-size:13px; }
    .charts { display:flex; gap:12px; margin-bottom:24px; }
    .chart-box { flex:1; background:#f0f3f5; border:1px solid #cdd4d9; padding:16px 20px; }
    .chart-title { font-size:9px; font-weight:500; letter-spacing:2px; text-transform:uppercase; color:#aab4bc; margin-bottom:10px; }
    .card { display:block; text-decoration:none; background:#f0f3f5; border:1px solid #cdd4d9; padding:20px 28px; margin-bottom:12px; }
    .card-meta { display:flex; justify-content:space-between; align-items:center; margin-bottom:8px; }
    .card-issue { font-size:9px; font-weight:600; letter-spacing:2px; text-transform:uppercase; color:#aab4bc; }
    .card-headline { font-family:'Playfair Display',serif; font-size:17px; font-weight:700; color:#1a1a1a; line-height:1.35; }
    .pill { font-size:10px; font-weight:600; letter-spacing:1px; text-transform:uppercase; padding:3px 10px; border-radius:20px; }
    .empty { color:#aab4bc; font-size:13px; }
    a:hover .card-headline { color:#555; }
  </style>
</head>
<body>
<div class="wrap">
  <div class="masthead">
    <div class="masthead-name">{{.Name}}</div>
    <div class="masthead-sub">Archive &mdash; by {{.Author}}</div>
  </div>
{{if .Cards}}  <input class="search" id="search" type="text" placeholder="Search issues...">
  <div class="charts">
    <div class="chart-box"><div class="chart-title">Sentiment Trend</div><canvas id="chart-sentiment" width="260" height="80"></canvas></div>
    <div class="chart-box"><div class="chart-title">Stories per Issue</div><canvas id="chart-stories" width="260" height="80"></canvas></div>
  </div>
{{range .Cards}}  <a class="card" href="{{.Filename}}" data-search="{{.SearchText}}">
    <div class="card-meta">
      <span class="card-issue">ISSUE #{{.IssueNumber}} &middot; {{.Label}}</span>
      {{if .SentimentLabel}}<span class="pill" style="color:{{.SentimentColor}}; border:1px solid {{.SentimentColor}};">{{.SentimentLabel}}</span>{{end}}
    </div>
    <div class="card-headline">{{if .Headline}}{{.Headline}}{{else}}View issue &rarr;{{end}}</div>
  </a>
{{end}}{{else}}  <p class="empty">No issues yet.</p>
{{end}}</div>
<script id="chart-data" type="application/json">{{.ChartJSON}}</script>
<script>
(function () {
  var data = JSON.parse(document.getElementById("chart-data").textContent);

  function drawSeries(id, values, max, color) {
    var canvas = document.getElementById(id);
    if (!canvas || !values.length) return;
    var ctx = canvas.getContext("2d");
    var w = canvas.width, h = canvas.height, pad = 6;
    var step = values.length > 1 ? (w - 2 * pad) / (values.length - 1) : 0;
    ctx.strokeStyle = color;
    ctx.lineWidth = 2;
    ctx.beginPath();
    values.forEach(function (v, i) {
      var x = pad + i * step;
      var y = h - pad - (v / max) * (h - 2 * pad);
      if (i === 0) ctx.moveTo(x, y); else ctx.lineTo(x, y);
    });
    ctx.stroke();
  }

  drawSeries("chart-sentiment", data.positions, 100, "#3a4a54");
  var maxStories = Math.max.apply(null, data.story_count.concat([1]));
  drawSeries("chart-stories", data.story_count, maxStories, "#9a6a1a");

  var input = document.getElementById("search");
  if (!input) return;
  input.addEventListener("input", function () {
    var tokens = input.value.toLowerCase().split(/\s+/).filter(Boolean);
    document.querySelectorAll(".card").forEach(function (card) {
      var corpus = card.getAttribute("data-search") || "";
      var match = tokens.every(function (t) { return corpus.indexOf(t) !== -1; });
      card.style.display = match ? "" : "none";
    });
  });
})();
</script>
</body>
</html>
`))

func renderIndex(entries []models.ArchiveEntry, charts models.ChartData) (string, error) {
	page := indexPage{
		Name:   config.NewsletterName,
		Author: config.AuthorName,
	}

	for _, entry := range entries {
		card := indexCard{
			Filename:       entry.Filename,
			Label:          entry.Date,
			IssueNumber:    entry.IssueNumber,
			Headline:       entry.Headline,
			SentimentLabel: entry.SentimentLabel,
			SentimentColor: fallbackSentimentColor,
			SearchText:     entry.SearchText,
		}
		if c, ok := sentimentColors[entry.SentimentLabel]; ok {
			card.SentimentColor = c
		}
		if dt, err := time.Parse(storage.DateLayout, entry.Date); err == nil {
			card.Label = dt.Format("Monday, January 02, 2006")
		}
		page.Cards = append(page.Cards, card)
	}

	// Marshal the series ourselves so the embedded JSON stays stable.
	if charts.Dates == nil {
		charts.Dates = []string{}
	}
	if charts.Positions == nil {
		charts.Positions = []int{}
	}
	if charts.StoryCount == nil {
		charts.StoryCount = []int{}
	}
	chartJSON, err := json.Marshal(charts)
	if err != nil {
		return "", err
	}
	page.ChartJSON = template.JS(chartJSON)

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}
