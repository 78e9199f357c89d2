// Package engineobs wraps the Engine with logging and tracing.
package engineobs

import (
	"context"
	"time"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/trace"
	"alpaca-trading-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

// Wrap wraps an engine with observability middleware
func Wrap(engine interfaces.Engine) interfaces.Engine {
	return &observableEngine{engine: engine}
}

func (oe *observableEngine) RunOnce(ctx context.Context) (*types.StepResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.RunOnce")
	defer span.End()

	start := time.Now()
	result, err := oe.engine.RunOnce(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Strategy run failed", err)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Strategy run completed",
		"symbol", result.Symbol,
		"side", result.Decision.Side,
		"status", result.Status,
		"order_id", result.OrderID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
