package eod

import (
	"os"
	"strings"
	"testing"

	"alpaca-trading-bot/internal/marketclock"
	"alpaca-trading-bot/internal/tradelog"
)

func TestSummarizeDay(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())

	seed := []tradelog.Entry{
		{Symbol: "VOO", Amount: 750, TradeType: "NOTIONAL", Side: "BUY", Status: "FILLED", OrderID: "o-1"},
		{Symbol: "VOO", Amount: 500, TradeType: "NOTIONAL", Side: "BUY", Status: "CANCELLED", OrderID: "o-2"},
		{Symbol: "VOO", Amount: 2.5, TradeType: "FRACTIONAL", Side: "SELL", Status: "FILLED", OrderID: "o-3"},
	}
	for _, e := range seed {
		if err := tradelog.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	path, err := SummarizeDay(marketclock.Now())
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("expected a summary file path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, "symbol,buy_count,buy_notional") {
		t.Errorf("missing header in summary:\n%s", out)
	}
	if !strings.Contains(out, "VOO,2,1250,1,2.5,2,1,0") {
		t.Errorf("unexpected aggregate row:\n%s", out)
	}
}

func TestSummarizeEmptyDay(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	path, err := SummarizeDay(marketclock.Now())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("expected no file for empty day, got %q", path)
	}
}
