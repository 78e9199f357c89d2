package tradelog

import (
	"os"
	"strings"
	"testing"
	"time"

	"alpaca-trading-bot/internal/marketclock"
)

func TestAppendAndReadDay(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())

	entries := []Entry{
		{Symbol: "VOO", Amount: 750.25, TradeType: "NOTIONAL", Side: "BUY", Status: "FILLED", OrderID: "o-1"},
		{Symbol: "VOO", Amount: 1.5, TradeType: "FRACTIONAL", Side: "SELL", Status: "CANCELLED", OrderID: "o-2"},
	}
	for _, e := range entries {
		if err := Append(e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ReadDay(marketclock.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Symbol != "VOO" || got[0].Side != "BUY" || got[0].Amount != 750.25 {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
	if got[1].Status != "CANCELLED" || got[1].OrderID != "o-2" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
	if got[0].Timestamp == "" {
		t.Error("expected timestamp to be filled in on append")
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	if err := Append(Entry{Symbol: "VOO", Side: "BUY"}); err != nil {
		t.Fatal(err)
	}
	if err := Append(Entry{Symbol: "VOO", Side: "SELL"}); err != nil {
		t.Fatal(err)
	}

	p := dailyFilepath(marketclock.Now())
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "timestamp,symbol"); n != 1 {
		t.Errorf("expected exactly one header row, got %d in:\n%s", n, b)
	}
}

func TestReadDayMissingFile(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	got, err := ReadDay(marketclock.Now())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil for missing day, got %v", got)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	if err := Append(Entry{Symbol: "VOO", Side: "BUY"}); err != nil {
		t.Fatal(err)
	}
	p := dailyFilepath(marketclock.Now())
	old := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Error("expected original csv to be removed")
	}
	if _, err := os.Stat(p + ".gz"); err != nil {
		t.Errorf("expected gzipped log, got %v", err)
	}
}

func TestCompressOlderKeepsRecent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	if err := Append(Entry{Symbol: "VOO", Side: "BUY"}); err != nil {
		t.Fatal(err)
	}
	if err := CompressOlder(7); err != nil {
		t.Fatal(err)
	}
	p := dailyFilepath(marketclock.Now())
	if _, err := os.Stat(p); err != nil {
		t.Errorf("recent log should survive compaction: %v", err)
	}
}
