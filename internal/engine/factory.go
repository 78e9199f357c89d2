package engine

import (
	"context"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/types"
)

// HeadlineSource supplies recent headlines for the traded symbol. Optional.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string) ([]types.Headline, error)
}

// New builds the trading engine. headlines may be nil; updates may be nil
// when the trade-updates stream is disabled.
func New(cfg *store.Config, brk interfaces.Broker, d interfaces.Decider, headlines HeadlineSource, updates <-chan types.TradeUpdate) interfaces.Engine {
	return newEngine(cfg, brk, d, headlines, updates)
}
