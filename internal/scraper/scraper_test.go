package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Test</title><style>body { color: red; }</style></head>
<body>
<nav><p>Home | Markets | About</p></nav>
<header><p>Site header</p></header>
<article>
<p>The Mexican peso strengthened against the dollar on Tuesday after the
central bank signaled it would keep rates higher for longer than markets
had priced in.</p>
<p>Analysts at three brokerages revised their year-end forecasts.</p>
</article>
<aside><p>Related stories</p></aside>
<footer><p>Copyright 2025</p></footer>
<script>console.log("tracking");</script>
</body>
</html>`

func TestFetchArticleTextExtractsParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	s := &Scraper{Client: srv.Client()}
	text, err := s.FetchArticleText(context.Background(), srv.URL, 3000)
	require.NoError(t, err)

	assert.Contains(t, text, "The Mexican peso strengthened")
	assert.Contains(t, text, "revised their year-end forecasts")
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Home | Markets")
}

func TestFetchArticleTextCapsLength(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("peso ", 500) + "</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	defer srv.Close()

	s := &Scraper{Client: srv.Client()}
	text, err := s.FetchArticleText(context.Background(), srv.URL, 200)
	require.NoError(t, err)
	assert.Len(t, text, 200)
}

func TestFetchArticleTextRejectsShortPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Accept cookies?</p></body></html>"))
	}))
	defer srv.Close()

	s := &Scraper{Client: srv.Client()}
	_, err := s.FetchArticleText(context.Background(), srv.URL, 3000)
	assert.Error(t, err)
}

func TestFetchArticleTextRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := &Scraper{Client: srv.Client()}
	_, err := s.FetchArticleText(context.Background(), srv.URL, 3000)
	assert.Error(t, err)
}

func TestExtractParagraphTextNormalizesWhitespace(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<html><body><p>first\n\n  line</p><p>   second line  </p></body></html>"))
	require.NoError(t, err)

	assert.Equal(t, "first line second line", ExtractParagraphText(doc))
}
