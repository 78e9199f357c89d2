// Package eod writes a per-symbol end-of-day summary of the trade log.
package eod

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"alpaca-trading-bot/internal/marketclock"
	"alpaca-trading-bot/internal/tradelog"
	"alpaca-trading-bot/internal/types"

	"github.com/gocarina/gocsv"
)

// summaryRow is one output row, serialized with gocsv.
type summaryRow struct {
	Symbol       string  `csv:"symbol"`
	BuyCount     int     `csv:"buy_count"`
	BuyNotional  float64 `csv:"buy_notional"`
	SellCount    int     `csv:"sell_count"`
	SellQty      float64 `csv:"sell_qty"`
	FilledCount  int     `csv:"filled"`
	CancelCount  int     `csv:"cancelled"`
	SkippedCount int     `csv:"skipped"`
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func csvPath(t time.Time) string {
	d := t.In(marketclock.Location()).Format("2006-01-02")
	return filepath.Join(logDir(), "eod", d+".csv")
}

// SummarizeDay aggregates the day's trade log into an EOD CSV and returns
// its path. An empty day produces no file and an empty path.
func SummarizeDay(t time.Time) (string, error) {
	entries, err := tradelog.ReadDay(t)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}

	aggs := map[string]*summaryRow{}
	for _, e := range entries {
		row := aggs[e.Symbol]
		if row == nil {
			row = &summaryRow{Symbol: e.Symbol}
			aggs[e.Symbol] = row
		}
		switch e.Side {
		case types.SideBuy:
			row.BuyCount++
			row.BuyNotional += e.Amount
		case types.SideSell:
			row.SellCount++
			row.SellQty += e.Amount
		}
		switch e.Status {
		case types.OutcomeFilled:
			row.FilledCount++
		case types.OutcomeCancelled:
			row.CancelCount++
		case types.OutcomeSkipped:
			row.SkippedCount++
		}
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]summaryRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *aggs[k])
	}

	outPath := csvPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := gocsv.Marshal(rows, out); err != nil {
		return "", err
	}
	return outPath, nil
}

func SummarizeToday() (string, error) { return SummarizeDay(marketclock.Now()) }

// ShouldRunNow reports whether today's summary is due: past 16:10 exchange
// time and not written yet.
func ShouldRunNow() (bool, string) {
	now := marketclock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 16, 10, 0, 0, now.Location())
	outPath := csvPath(now)
	if now.After(cutoff) {
		if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
			return true, outPath
		}
	}
	return false, outPath
}
