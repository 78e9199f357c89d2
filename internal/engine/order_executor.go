package engine

import (
	"context"
	"time"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/tradelog"
	"alpaca-trading-bot/internal/types"

	"github.com/google/uuid"
)

// orderExecutor submits orders and watches them until they fill or the
// wait budget runs out, then records the outcome in the trade log.
type orderExecutor struct {
	brk     interfaces.Broker
	maxWait time.Duration
	poll    time.Duration
	updates <-chan types.TradeUpdate
}

func (oe *orderExecutor) execute(ctx context.Context, req types.OrderReq, tradeType string, amount float64) (orderID, outcome string, err error) {
	req.ClientOrderID = uuid.NewString()

	order, err := oe.brk.PlaceOrder(ctx, req)
	if err != nil {
		return "", "", err
	}

	outcome = oe.monitor(ctx, order)

	logger.Trade(ctx, req.Symbol, req.Side, amount, tradeType, order.ID, outcome)
	if err := tradelog.Append(tradelog.Entry{
		Symbol:    req.Symbol,
		Amount:    amount,
		TradeType: tradeType,
		Side:      req.Side,
		Status:    outcome,
		OrderID:   order.ID,
	}); err != nil {
		logger.Warn(ctx, "Failed to append trade log", "order_id", order.ID, "error", err)
	}
	return order.ID, outcome, nil
}

// monitor waits for a terminal order state. Timeout cancels the order.
func (oe *orderExecutor) monitor(ctx context.Context, order types.Order) string {
	if order.Status == types.OrderFilled {
		return types.OutcomeFilled
	}

	logger.Info(ctx, "Monitoring order", "order_id", order.ID, "status", order.Status)

	deadline := time.NewTimer(oe.maxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(oe.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = oe.brk.CancelOrder(context.WithoutCancel(ctx), order.ID)
			return types.OutcomeCancelled

		case u := <-oe.updates:
			if u.OrderID != order.ID {
				continue
			}
			logger.Debug(ctx, "Trade update for monitored order", "order_id", u.OrderID, "event", u.Event)
			if u.Event == "fill" || u.Status == types.OrderFilled {
				return types.OutcomeFilled
			}
			if isTerminalEvent(u.Event) {
				return types.OutcomeCancelled
			}

		case <-ticker.C:
			o, err := oe.brk.GetOrder(ctx, order.ID)
			if err != nil {
				logger.Warn(ctx, "Order status poll failed", "order_id", order.ID, "error", err)
				continue
			}
			logger.Debug(ctx, "Order status", "order_id", order.ID, "status", o.Status)
			if o.Status == types.OrderFilled {
				return types.OutcomeFilled
			}
			if isTerminalStatus(o.Status) {
				return types.OutcomeCancelled
			}

		case <-deadline.C:
			logger.Warn(ctx, "Order not filled within wait budget, cancelling", "order_id", order.ID)
			_ = oe.brk.CancelOrder(ctx, order.ID)
			return types.OutcomeCancelled
		}
	}
}

func isTerminalEvent(event string) bool {
	switch event {
	case "canceled", "rejected", "expired":
		return true
	}
	return false
}

func isTerminalStatus(status string) bool {
	switch status {
	case types.OrderCanceled, "rejected", "expired":
		return true
	}
	return false
}
