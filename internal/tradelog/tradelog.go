package tradelog

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"alpaca-trading-bot/internal/marketclock"

	"github.com/gocarina/gocsv"
)

var mu sync.Mutex

// Entry is one row in the daily trade log CSV. Column order matches the
// log the bot has always written: timestamp,symbol,amount,trade_type,side,
// status plus the broker order id.
type Entry struct {
	Timestamp string  `csv:"timestamp"`
	Symbol    string  `csv:"symbol"`
	Amount    float64 `csv:"amount"`
	TradeType string  `csv:"trade_type"`
	Side      string  `csv:"side"`
	Status    string  `csv:"status"`
	OrderID   string  `csv:"order_id"`
}

func logDir() string {
	if v := os.Getenv("TRADER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	d := t.In(marketclock.Location()).Format("2006-01-02")
	return filepath.Join(logDir(), "trades", d+".csv")
}

// Append writes one entry to today's trade log, creating the file with a
// header row when needed.
func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()

	now := marketclock.Now()
	e.Timestamp = now.Format("2006-01-02 15:04:05")
	p := dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(p)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := []Entry{e}
	if newFile {
		return gocsv.Marshal(rows, f)
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// ReadDay returns all entries logged on the given exchange-local day.
// A missing file is an empty day, not an error.
func ReadDay(t time.Time) ([]Entry, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(dailyFilepath(t))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CompressOlder gzips trade log files older than retentionDays and removes
// the originals. No-op for a non-positive retention.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".csv" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			return os.Remove(p)
		}

		in, e3 := os.Open(p)
		if e3 != nil {
			return nil
		}
		defer in.Close()

		out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e4 != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e5 := io.Copy(gw, in); e5 == nil {
			_ = gw.Close()
			_ = out.Close()
			return os.Remove(p)
		}
		_ = gw.Close()
		_ = out.Close()
		return nil
	})
}
