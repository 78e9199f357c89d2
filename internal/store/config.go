package store

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Credentials is one Alpaca API key pair.
type Credentials struct {
	APIKeyID     string
	APISecretKey string
}

type Config struct {
	Mode           string  `yaml:"mode"`
	Symbol         string  `yaml:"symbol"`
	Paper          bool    `yaml:"paper"`
	QuickTest      bool    `yaml:"quick_test"`
	MinCash        float64 `yaml:"min_cash"`
	MaxWaitSeconds int     `yaml:"max_wait_seconds"`
	PollSeconds    int     `yaml:"poll_seconds"`

	Strategy struct {
		Name         string  `yaml:"name"`
		ShortDays    int     `yaml:"short_days"`
		LongDays     int     `yaml:"long_days"`
		BuyFraction  float64 `yaml:"buy_fraction"`
		SellFraction float64 `yaml:"sell_fraction"`
		FlatFraction float64 `yaml:"flat_fraction"`
	} `yaml:"strategy"`

	Stream struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"stream"`

	News struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
		CacheMinutes int  `yaml:"cache_minutes"`
	} `yaml:"news"`

	// Key pairs come from the environment, never from the yaml file.
	Keys struct {
		Live  Credentials `yaml:"-"`
		Paper Credentials `yaml:"-"`
	} `yaml:"-"`
}

// ActiveCredentials selects the key pair matching the paper flag.
func (c *Config) ActiveCredentials() Credentials {
	if c.Paper {
		return c.Keys.Paper
	}
	return c.Keys.Live
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.Symbol == "" {
		return fmt.Errorf("symbol cannot be empty (set it in config.yaml or via SYMBOL)")
	}
	if c.Strategy.ShortDays <= 0 || c.Strategy.LongDays <= c.Strategy.ShortDays {
		return fmt.Errorf("strategy windows must satisfy 0 < short_days < long_days, got %d/%d",
			c.Strategy.ShortDays, c.Strategy.LongDays)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"buy_fraction", c.Strategy.BuyFraction},
		{"sell_fraction", c.Strategy.SellFraction},
		{"flat_fraction", c.Strategy.FlatFraction},
	} {
		if f.v <= 0 || f.v > 1 {
			return fmt.Errorf("strategy.%s must be between 0-1, got %.2f", f.name, f.v)
		}
	}
	if c.MaxWaitSeconds <= 0 {
		return fmt.Errorf("max_wait_seconds must be positive, got %d", c.MaxWaitSeconds)
	}
	if c.PollSeconds <= 0 {
		return fmt.Errorf("poll_seconds must be positive, got %d", c.PollSeconds)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()
	c.ApplyEnv()

	// Quick-test runs must never touch the live account.
	if c.QuickTest {
		c.Paper = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.MinCash == 0 {
		c.MinCash = 100
	}
	if c.MaxWaitSeconds == 0 {
		c.MaxWaitSeconds = 300
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 60
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "SMA_CROSS"
	}
	if c.Strategy.ShortDays == 0 {
		c.Strategy.ShortDays = 5
	}
	if c.Strategy.LongDays == 0 {
		c.Strategy.LongDays = 20
	}
	if c.Strategy.BuyFraction == 0 {
		c.Strategy.BuyFraction = 0.75
	}
	if c.Strategy.SellFraction == 0 {
		c.Strategy.SellFraction = 0.10
	}
	if c.Strategy.FlatFraction == 0 {
		c.Strategy.FlatFraction = 0.50
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 10
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
}

// ApplyEnv overlays environment variables on top of the yaml values.
// Credentials only ever come from the environment.
func (c *Config) ApplyEnv() {
	c.Keys.Live = Credentials{
		APIKeyID:     os.Getenv("ALPACA_API_KEY_ID"),
		APISecretKey: os.Getenv("ALPACA_API_SECRET_KEY"),
	}
	c.Keys.Paper = Credentials{
		APIKeyID:     os.Getenv("PAPER_ALPACA_API_KEY_ID"),
		APISecretKey: os.Getenv("PAPER_ALPACA_API_SECRET_KEY"),
	}
	if v := os.Getenv("PAPER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Paper = b
		}
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Symbol = v
	}
	if v := os.Getenv("MIN_CASH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinCash = f
		}
	}
	if v := os.Getenv("MAX_WAIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxWaitSeconds = n
		}
	}
}
