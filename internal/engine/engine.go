package engine

import (
	"context"
	"fmt"
	"time"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/types"
)

// Alpaca rejects notional orders below one dollar.
const minNotional = 1.0

type Engine struct {
	cfg       *store.Config
	brk       interfaces.Broker
	decider   interfaces.Decider
	exec      *orderExecutor
	headlines HeadlineSource
}

func newEngine(cfg *store.Config, brk interfaces.Broker, d interfaces.Decider, headlines HeadlineSource, updates <-chan types.TradeUpdate) *Engine {
	return &Engine{
		cfg:     cfg,
		brk:     brk,
		decider: d,
		exec: &orderExecutor{
			brk:     brk,
			maxWait: time.Duration(cfg.MaxWaitSeconds) * time.Second,
			poll:    time.Duration(cfg.PollSeconds) * time.Second,
			updates: updates,
		},
		headlines: headlines,
	}
}

// RunOnce executes one full strategy pass: fetch closes, decide, size the
// order from cash or position, submit and monitor it.
func (e *Engine) RunOnce(ctx context.Context) (*types.StepResult, error) {
	symbol := e.cfg.Symbol
	logger.Debug(ctx, "Starting strategy run", "symbol", symbol)

	e.logHeadlines(ctx, symbol)

	short, err := e.brk.DailyCloses(ctx, symbol, e.cfg.Strategy.ShortDays)
	if err != nil {
		return nil, fmt.Errorf("fetch short window closes: %w", err)
	}
	long, err := e.brk.DailyCloses(ctx, symbol, e.cfg.Strategy.LongDays)
	if err != nil {
		return nil, fmt.Errorf("fetch long window closes: %w", err)
	}
	logger.Debug(ctx, "Closing prices fetched", "symbol", symbol,
		"short_count", len(short), "long_count", len(long))

	decision, err := e.decider.Decide(ctx, symbol, short, long)
	if err != nil {
		return nil, fmt.Errorf("strategy decision: %w", err)
	}
	logger.Decision(ctx, symbol, decision.Side, decision.Multiplier, decision.Reason)

	result := &types.StepResult{
		Symbol:   symbol,
		Decision: decision,
		Time:     time.Now().Unix(),
	}

	switch decision.Side {
	case types.SideBuy:
		return e.executeBuy(ctx, result, decision)
	case types.SideSell:
		return e.executeSell(ctx, result, decision)
	default:
		logger.Debug(ctx, "HOLD decision, no action taken", "symbol", symbol)
		result.Status = types.OutcomeSkipped
		return result, nil
	}
}

func (e *Engine) executeBuy(ctx context.Context, result *types.StepResult, decision types.Decision) (*types.StepResult, error) {
	acct, err := e.brk.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account for sizing: %w", err)
	}

	notional := acct.Cash * decision.Multiplier
	if notional < minNotional {
		logger.Warn(ctx, "Buy skipped, notional below minimum",
			"symbol", result.Symbol, "cash", acct.Cash, "notional", notional)
		result.Status = types.OutcomeSkipped
		return result, nil
	}

	result.Amount = notional
	result.TradeType = types.TradeNotional

	orderID, outcome, err := e.exec.execute(ctx, types.OrderReq{
		Symbol:   result.Symbol,
		Side:     types.SideBuy,
		Notional: notional,
	}, types.TradeNotional, notional)
	if err != nil {
		return nil, err
	}
	result.OrderID = orderID
	result.Status = outcome
	return result, nil
}

func (e *Engine) executeSell(ctx context.Context, result *types.StepResult, decision types.Decision) (*types.StepResult, error) {
	pos, err := e.brk.Position(ctx, result.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch position for sizing: %w", err)
	}
	if pos == nil || pos.Qty <= 0 {
		logger.Info(ctx, "Sell skipped, no position held", "symbol", result.Symbol)
		result.Status = types.OutcomeSkipped
		return result, nil
	}

	qty := pos.Qty * decision.Multiplier
	result.Amount = qty
	result.TradeType = types.TradeFractional

	orderID, outcome, err := e.exec.execute(ctx, types.OrderReq{
		Symbol: result.Symbol,
		Side:   types.SideSell,
		Qty:    qty,
	}, types.TradeFractional, qty)
	if err != nil {
		return nil, err
	}
	result.OrderID = orderID
	result.Status = outcome
	return result, nil
}

func (e *Engine) logHeadlines(ctx context.Context, symbol string) {
	if e.headlines == nil {
		return
	}
	hs, err := e.headlines.Headlines(ctx, symbol)
	if err != nil {
		// Headlines are operator context, never a trading gate.
		logger.Warn(ctx, "Failed to fetch headlines", "symbol", symbol, "error", err)
		return
	}
	for _, h := range hs {
		logger.Info(ctx, "Headline", "symbol", symbol, "source", h.Source, "title", h.Title, "url", h.URL)
	}
}
