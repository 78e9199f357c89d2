package interfaces

import (
	"context"

	"alpaca-trading-bot/internal/types"
)

type Broker interface {
	Account(ctx context.Context) (types.Account, error)
	// DailyCloses returns up to n daily closing prices for symbol,
	// oldest first, ending at the most recent completed session.
	DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error)
	PlaceOrder(ctx context.Context, req types.OrderReq) (types.Order, error)
	GetOrder(ctx context.Context, orderID string) (types.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	// Position returns the open position for symbol, or nil if flat.
	Position(ctx context.Context, symbol string) (*types.Position, error)
}
