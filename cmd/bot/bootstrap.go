package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	brokeralpaca "alpaca-trading-bot/internal/broker/alpaca"
	"alpaca-trading-bot/internal/broker/brokerobs"
	"alpaca-trading-bot/internal/engine"
	"alpaca-trading-bot/internal/engine/engineobs"
	"alpaca-trading-bot/internal/eod"
	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/news"
	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/strategy"
	"alpaca-trading-bot/internal/stream"
	"alpaca-trading-bot/internal/trace"
	"alpaca-trading-bot/internal/tradelog"
	"alpaca-trading-bot/internal/types"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs gzips old trade log files if retention is configured.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn(ctx, "Invalid TRADER_LOG_RETENTION_DAYS", "value", v)
			return
		}
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeBroker selects the credential pair matching the paper flag and
// builds the broker with observability. Also returns the REST base URL so
// the stream client can derive its websocket endpoint.
func initializeBroker(ctx context.Context, cfg *store.Config) (interfaces.Broker, string) {
	creds := cfg.ActiveCredentials()

	brk := brokeralpaca.New(brokeralpaca.Params{
		Mode:      cfg.Mode,
		APIKeyID:  creds.APIKeyID,
		APISecret: creds.APISecretKey,
		Paper:     cfg.Paper,
	})

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	}
	if cfg.Paper {
		logger.Info(ctx, "Using paper trading endpoint")
	} else {
		logger.Warn(ctx, "Using LIVE trading endpoint - real money")
	}

	return brokerobs.Wrap(brk), brk.BaseURL()
}

func validateAccount(ctx context.Context, brk interfaces.Broker, cfg *store.Config) error {
	if cfg.Mode == "DRY_RUN" {
		// Simulated sessions may run without a reachable account.
		return nil
	}
	return engine.ValidateAccount(ctx, brk, cfg.MinCash)
}

// initializeStream starts the trade-updates stream when enabled. Both
// returns are nil when the stream is off.
func initializeStream(ctx context.Context, cfg *store.Config, baseURL string) (*stream.Client, <-chan types.TradeUpdate) {
	if !cfg.Stream.Enabled || cfg.Mode == "DRY_RUN" {
		return nil, nil
	}

	creds := cfg.ActiveCredentials()
	client := stream.New(stream.Params{
		BaseURL:   baseURL,
		APIKeyID:  creds.APIKeyID,
		APISecret: creds.APISecretKey,
	})
	client.Start(ctx)
	logger.Info(ctx, "Trade-updates stream started")
	return client, client.Updates()
}

// initializeEngine wires the strategy, optional headlines and the engine
// with observability.
func initializeEngine(ctx context.Context, cfg *store.Config, brk interfaces.Broker, updates <-chan types.TradeUpdate) interfaces.Engine {
	decider := strategy.New(cfg)
	if cfg.Strategy.Name != "SMA_CROSS" {
		logger.Warn(ctx, "Unknown strategy configured - using Noop decider (always HOLD)", "name", cfg.Strategy.Name)
	}

	var headlines engine.HeadlineSource
	if cfg.News.Enabled {
		headlines = news.NewService(cfg)
		logger.Info(ctx, "Headline scraping enabled", "max", cfg.News.MaxHeadlines)
	}

	return engineobs.Wrap(engine.New(cfg, brk, decider, headlines, updates))
}

func shutdown(ctx context.Context, streamClient *stream.Client) {
	if streamClient != nil {
		streamClient.Stop()
	}
	if p, err := eod.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "EOD summary written", "path", p)
	}
	if err := trace.Shutdown(ctx); err != nil {
		logger.Warn(ctx, "Tracer shutdown failed", "error", err)
	}
}
