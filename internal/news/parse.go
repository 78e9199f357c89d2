package news

import (
	"strings"

	"alpaca-trading-bot/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// Selectors locates headline parts inside one news item.
type Selectors struct {
	Item  string
	Title string
	URL   string
}

// extractHeadlines pulls headlines out of a selection that already matches
// one or more item nodes.
func extractHeadlines(sel *goquery.Selection, s Selectors, source string, max int) []types.Headline {
	var out []types.Headline
	sel.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := strings.TrimSpace(item.Find(s.Title).First().Text())
		if title == "" {
			return true
		}
		url, _ := item.Find(s.URL).First().Attr("href")
		out = append(out, types.Headline{
			Source: source,
			Title:  title,
			URL:    url,
		})
		return len(out) < max
	})
	return out
}

// parseDocument runs the item selector over a full document. Used by tests
// and any source fetched outside colly.
func parseDocument(doc *goquery.Document, s Selectors, source string, max int) []types.Headline {
	return extractHeadlines(doc.Find(s.Item), s, source, max)
}
