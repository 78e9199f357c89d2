// Package brokerobs wraps a Broker with logging and tracing.
package brokerobs

import (
	"context"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/trace"
	"alpaca-trading-bot/internal/types"
)

type observableBroker struct {
	broker interfaces.Broker
}

var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap wraps a broker with observability middleware
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{broker: broker}
}

func (ob *observableBroker) Account(ctx context.Context) (types.Account, error) {
	ctx, span := trace.StartSpan(ctx, "broker.Account")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching account")

	acct, err := ob.broker.Account(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch account", err)
		return types.Account{}, err
	}

	logger.DebugSkip(ctx, 1, "Account fetched",
		"status", acct.Status,
		"cash", acct.Cash,
		"fractional_trading", acct.FractionalTrading,
	)
	return acct, nil
}

func (ob *observableBroker) DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error) {
	ctx, span := trace.StartSpan(ctx, "broker.DailyCloses")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching daily closes", "symbol", symbol, "days", n)

	closes, err := ob.broker.DailyCloses(ctx, symbol, n)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch daily closes", err, "symbol", symbol, "days", n)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Daily closes fetched", "symbol", symbol, "count", len(closes))
	return closes, nil
}

func (ob *observableBroker) PlaceOrder(ctx context.Context, req types.OrderReq) (types.Order, error) {
	ctx, span := trace.StartSpan(ctx, "broker.PlaceOrder")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Placing order",
		"symbol", req.Symbol,
		"side", req.Side,
		"qty", req.Qty,
		"notional", req.Notional,
		"client_order_id", req.ClientOrderID,
	)

	order, err := ob.broker.PlaceOrder(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to place order", err,
			"symbol", req.Symbol,
			"side", req.Side,
		)
		return types.Order{}, err
	}

	logger.InfoSkip(ctx, 1, "Order placed",
		"symbol", req.Symbol,
		"order_id", order.ID,
		"status", order.Status,
	)
	return order, nil
}

func (ob *observableBroker) GetOrder(ctx context.Context, orderID string) (types.Order, error) {
	ctx, span := trace.StartSpan(ctx, "broker.GetOrder")
	defer span.End()

	order, err := ob.broker.GetOrder(ctx, orderID)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch order", err, "order_id", orderID)
		return types.Order{}, err
	}

	logger.DebugSkip(ctx, 1, "Order status", "order_id", orderID, "status", order.Status)
	return order, nil
}

func (ob *observableBroker) CancelOrder(ctx context.Context, orderID string) error {
	ctx, span := trace.StartSpan(ctx, "broker.CancelOrder")
	defer span.End()

	logger.WarnSkip(ctx, 1, "Cancelling order", "order_id", orderID)

	if err := ob.broker.CancelOrder(ctx, orderID); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to cancel order", err, "order_id", orderID)
		return err
	}
	return nil
}

func (ob *observableBroker) Position(ctx context.Context, symbol string) (*types.Position, error) {
	ctx, span := trace.StartSpan(ctx, "broker.Position")
	defer span.End()

	pos, err := ob.broker.Position(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch position", err, "symbol", symbol)
		return nil, err
	}

	if pos == nil {
		logger.DebugSkip(ctx, 1, "No open position", "symbol", symbol)
	} else {
		logger.DebugSkip(ctx, 1, "Position fetched", "symbol", symbol, "qty", pos.Qty)
	}
	return pos, nil
}
