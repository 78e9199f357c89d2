package news

import (
	"context"
	"sync"
	"time"

	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/types"
)

// Service fetches headlines for the traded symbol with a TTL cache so a
// quick-test cadence does not hammer the sources.
type Service struct {
	scraper      *Scraper
	cache        *headlineCache
	maxHeadlines int
	enabled      bool
}

func NewService(cfg *store.Config) *Service {
	return &Service{
		scraper:      NewScraper(15 * time.Second),
		cache:        newHeadlineCache(time.Duration(cfg.News.CacheMinutes) * time.Minute),
		maxHeadlines: cfg.News.MaxHeadlines,
		enabled:      cfg.News.Enabled,
	}
}

func (s *Service) Headlines(ctx context.Context, symbol string) ([]types.Headline, error) {
	if !s.enabled {
		return nil, nil
	}
	if cached, ok := s.cache.get(symbol); ok {
		logger.Debug(ctx, "Headlines served from cache", "symbol", symbol, "count", len(cached))
		return cached, nil
	}

	headlines, err := s.scraper.Scrape(ctx, symbol, s.maxHeadlines)
	if err != nil {
		return nil, err
	}
	s.cache.set(symbol, headlines)
	return headlines, nil
}

type cacheEntry struct {
	headlines []types.Headline
	expires   time.Time
}

type headlineCache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]cacheEntry
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{ttl: ttl, m: map[string]cacheEntry{}}
}

func (c *headlineCache) get(symbol string) ([]types.Headline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[symbol]
	if !ok || time.Now().After(e.expires) {
		delete(c.m, symbol)
		return nil, false
	}
	return e.headlines, true
}

func (c *headlineCache) set(symbol string, headlines []types.Headline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[symbol] = cacheEntry{headlines: headlines, expires: time.Now().Add(c.ttl)}
}
