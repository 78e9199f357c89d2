package interfaces

import (
	"context"

	"alpaca-trading-bot/internal/types"
)

type Engine interface {
	RunOnce(ctx context.Context) (*types.StepResult, error)
}
