package news

import (
	"context"
	"strings"
	"time"

	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/types"

	"github.com/gocolly/colly/v2"
)

// Source is one news site to scrape for a symbol's headlines.
type Source struct {
	Name      string
	URL       string // {symbol} is replaced with the ticker
	Selectors Selectors
	RateLimit time.Duration
}

type Scraper struct {
	sources []Source
	timeout time.Duration
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name: "Finviz",
			URL:  "https://finviz.com/quote.ashx?t={symbol}",
			Selectors: Selectors{
				Item:  "table.fullview-news-outer tr",
				Title: "a.tab-link-news",
				URL:   "a.tab-link-news",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name: "Yahoo Finance",
			URL:  "https://finance.yahoo.com/quote/{symbol}/news",
			Selectors: Selectors{
				Item:  "li.stream-item",
				Title: "h3 a",
				URL:   "h3 a",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Scrape fetches up to maxHeadlines recent headlines for symbol across all
// sources. Per-source failures are logged and skipped.
func (s *Scraper) Scrape(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error) {
	perSource := maxHeadlines / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []types.Headline
	for _, src := range s.sources {
		headlines, err := s.scrapeSource(ctx, src, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Failed to scrape source", "source", src.Name, "symbol", symbol, "error", err)
			continue
		}
		all = append(all, headlines...)
		if len(all) >= maxHeadlines {
			all = all[:maxHeadlines]
			break
		}
		time.Sleep(src.RateLimit)
	}
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, symbol string, max int) ([]types.Headline, error) {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"),
	)
	c.SetRequestTimeout(s.timeout)

	var headlines []types.Headline
	c.OnHTML(src.Selectors.Item, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}
		headlines = append(headlines, extractHeadlines(e.DOM, src.Selectors, src.Name, 1)...)
	})

	url := strings.ReplaceAll(src.URL, "{symbol}", symbol)
	if err := c.Visit(url); err != nil {
		return nil, err
	}
	return headlines, nil
}
