package interfaces

import (
	"context"

	"alpaca-trading-bot/internal/types"
)

type Decider interface {
	Decide(ctx context.Context, symbol string, short, long []float64) (types.Decision, error)
}
