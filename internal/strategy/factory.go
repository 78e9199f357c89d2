package strategy

import (
	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/store"
)

func New(cfg *store.Config) interfaces.Decider {
	switch cfg.Strategy.Name {
	case "SMA_CROSS":
		return NewSMACross(Fractions{
			Buy:  cfg.Strategy.BuyFraction,
			Sell: cfg.Strategy.SellFraction,
			Flat: cfg.Strategy.FlatFraction,
		})
	default:
		return NewNoop()
	}
}
