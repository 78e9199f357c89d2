package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func setCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ALPACA_API_KEY_ID", "live-key")
	t.Setenv("ALPACA_API_SECRET_KEY", "live-secret")
	t.Setenv("PAPER_ALPACA_API_KEY_ID", "paper-key")
	t.Setenv("PAPER_ALPACA_API_SECRET_KEY", "paper-secret")
}

func TestActiveCredentialsPaper(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("PAPER", "true")

	p := writeConfig(t, "mode: DRY_RUN\nsymbol: VOO\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}

	creds := cfg.ActiveCredentials()
	if creds.APIKeyID != "paper-key" {
		t.Errorf("expected paper key id, got %q", creds.APIKeyID)
	}
	if creds.APISecretKey != "paper-secret" {
		t.Errorf("expected paper secret, got %q", creds.APISecretKey)
	}
}

func TestActiveCredentialsLive(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("PAPER", "false")

	p := writeConfig(t, "mode: DRY_RUN\nsymbol: VOO\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}

	creds := cfg.ActiveCredentials()
	if creds.APIKeyID != "live-key" {
		t.Errorf("expected live key id, got %q", creds.APIKeyID)
	}
	if creds.APISecretKey != "live-secret" {
		t.Errorf("expected live secret, got %q", creds.APISecretKey)
	}
}

func TestSymbolPassesThroughUnchanged(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("PAPER", "true")
	t.Setenv("SYMBOL", "AAPL")

	p := writeConfig(t, "mode: DRY_RUN\nsymbol: VOO\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Symbol != "AAPL" {
		t.Errorf("expected SYMBOL env to win, got %q", cfg.Symbol)
	}
}

func TestQuickTestForcesPaper(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("PAPER", "false")

	p := writeConfig(t, "mode: DRY_RUN\nsymbol: VOO\nquick_test: true\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Paper {
		t.Error("quick_test must force paper trading")
	}
}

func TestDefaults(t *testing.T) {
	setCredentialEnv(t)
	p := writeConfig(t, "symbol: VOO\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "DRY_RUN" {
		t.Errorf("expected default mode DRY_RUN, got %q", cfg.Mode)
	}
	if cfg.Strategy.ShortDays != 5 || cfg.Strategy.LongDays != 20 {
		t.Errorf("expected default windows 5/20, got %d/%d", cfg.Strategy.ShortDays, cfg.Strategy.LongDays)
	}
	if cfg.Strategy.BuyFraction != 0.75 || cfg.Strategy.SellFraction != 0.10 || cfg.Strategy.FlatFraction != 0.50 {
		t.Errorf("unexpected default fractions: %+v", cfg.Strategy)
	}
	if cfg.MaxWaitSeconds != 300 || cfg.PollSeconds != 60 {
		t.Errorf("unexpected default wait/poll: %d/%d", cfg.MaxWaitSeconds, cfg.PollSeconds)
	}
}

func TestEnvOverridesMinCashAndMaxWait(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("MIN_CASH", "250.5")
	t.Setenv("MAX_WAIT", "120")

	p := writeConfig(t, "mode: DRY_RUN\nsymbol: VOO\n")
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinCash != 250.5 {
		t.Errorf("expected MIN_CASH override, got %f", cfg.MinCash)
	}
	if cfg.MaxWaitSeconds != 120 {
		t.Errorf("expected MAX_WAIT override, got %d", cfg.MaxWaitSeconds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	setCredentialEnv(t)
	cases := []struct {
		name string
		body string
	}{
		{"bad mode", "mode: YOLO\nsymbol: VOO\n"},
		{"missing symbol", "mode: DRY_RUN\n"},
		{"inverted windows", "mode: DRY_RUN\nsymbol: VOO\nstrategy:\n  short_days: 20\n  long_days: 5\n"},
		{"fraction out of range", "mode: DRY_RUN\nsymbol: VOO\nstrategy:\n  buy_fraction: 1.5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.body)
			if _, err := LoadConfig(p); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}
