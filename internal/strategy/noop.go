package strategy

import (
	"context"

	"alpaca-trading-bot/internal/types"
)

// Noop always holds. Useful for wiring tests and as the fallback when the
// configured strategy name is unknown.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Decide(ctx context.Context, symbol string, short, long []float64) (types.Decision, error) {
	return types.Decision{Side: types.SideHold, Reason: "noop strategy"}, nil
}
