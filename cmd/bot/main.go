package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpaca-trading-bot/internal/eod"
	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/marketclock"

	"github.com/joho/godotenv"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	compressOldLogs(ctx)

	brk, baseURL := initializeBroker(ctx, cfg)
	must(validateAccount(ctx, brk, cfg))

	streamClient, updates := initializeStream(ctx, cfg, baseURL)
	eng := initializeEngine(ctx, cfg, brk, updates)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Bot started",
		"symbol", cfg.Symbol,
		"mode", cfg.Mode,
		"paper", cfg.Paper,
		"quick_test", cfg.QuickTest,
	)

	eodTick := time.NewTicker(60 * time.Second)
	defer eodTick.Stop()

	// Fires immediately so the first wake-up decision happens at startup.
	wake := time.NewTimer(0)
	defer wake.Stop()

	for {
		select {
		case <-wake.C:
			now := marketclock.Now()
			switch {
			case cfg.QuickTest:
				runStep(ctx, eng)
				wake.Reset(time.Minute)
			case marketclock.IsOpen(now):
				runStep(ctx, eng)
				next := marketclock.NextRunAfterTrade(now)
				logger.Info(ctx, "Next strategy run scheduled", "at", next.Format(time.RFC3339))
				wake.Reset(time.Until(next))
			default:
				next := marketclock.NextOpen(now)
				logger.Info(ctx, "Market closed, waiting for open", "at", next.Format(time.RFC3339))
				wake.Reset(time.Until(next))
			}

		case <-eodTick.C:
			if ok, _ := eod.ShouldRunNow(); ok {
				if p, err := eod.SummarizeToday(); err == nil && p != "" {
					logger.Info(ctx, "EOD summary written", "path", p)
				}
			}

		case <-sigc:
			logger.Info(ctx, "Shutting down")
			shutdown(ctx, streamClient)
			return

		case <-ctx.Done():
			shutdown(ctx, streamClient)
			return
		}
	}
}

func runStep(ctx context.Context, eng interfaces.Engine) {
	st, err := eng.RunOnce(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Strategy run failed", err)
		return
	}
	if st != nil {
		b, _ := json.Marshal(st)
		fmt.Println(string(b))
	}
}
