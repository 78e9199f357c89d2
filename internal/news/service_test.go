package news

import (
	"context"
	"strings"
	"testing"
	"time"

	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/types"

	"github.com/PuerkitoBio/goquery"
)

const sampleHTML = `
<html><body>
<table class="fullview-news-outer">
<tr><td>Aug-21</td><td><a class="tab-link-news" href="https://example.com/a">VOO hits record high</a></td></tr>
<tr><td>Aug-20</td><td><a class="tab-link-news" href="https://example.com/b">Index funds see inflows</a></td></tr>
<tr><td>Aug-19</td><td><span>no link here</span></td></tr>
<tr><td>Aug-18</td><td><a class="tab-link-news" href="https://example.com/c">Fed holds rates</a></td></tr>
</table>
</body></html>`

func finvizSelectors() Selectors {
	return Selectors{
		Item:  "table.fullview-news-outer tr",
		Title: "a.tab-link-news",
		URL:   "a.tab-link-news",
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatal(err)
	}

	headlines := parseDocument(doc, finvizSelectors(), "Finviz", 10)
	if len(headlines) != 3 {
		t.Fatalf("expected 3 headlines, got %d: %+v", len(headlines), headlines)
	}
	if headlines[0].Title != "VOO hits record high" {
		t.Errorf("unexpected first title %q", headlines[0].Title)
	}
	if headlines[0].URL != "https://example.com/a" {
		t.Errorf("unexpected first url %q", headlines[0].URL)
	}
	if headlines[0].Source != "Finviz" {
		t.Errorf("unexpected source %q", headlines[0].Source)
	}
}

func TestParseDocumentRespectsMax(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatal(err)
	}
	headlines := parseDocument(doc, finvizSelectors(), "Finviz", 2)
	if len(headlines) != 2 {
		t.Errorf("expected 2 headlines with max=2, got %d", len(headlines))
	}
}

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(50 * time.Millisecond)
	hs := []types.Headline{{Source: "Finviz", Title: "t", URL: "u"}}

	cache.set("VOO", hs)
	got, ok := cache.get("VOO")
	if !ok || len(got) != 1 {
		t.Fatalf("expected cache hit, got ok=%v len=%d", ok, len(got))
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := cache.get("VOO"); ok {
		t.Error("expected cache entry to expire")
	}
}

func TestServiceDisabled(t *testing.T) {
	cfg := &store.Config{}
	cfg.News.Enabled = false
	cfg.News.MaxHeadlines = 10
	cfg.News.CacheMinutes = 60

	svc := NewService(cfg)
	headlines, err := svc.Headlines(context.Background(), "VOO")
	if err != nil {
		t.Fatal(err)
	}
	if headlines != nil {
		t.Errorf("disabled service should return nil, got %v", headlines)
	}
}
