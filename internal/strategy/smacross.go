package strategy

import (
	"context"
	"errors"
	"math"

	"alpaca-trading-bot/internal/ta"
	"alpaca-trading-bot/internal/types"
)

// Fractions controls how aggressively each signal trades.
type Fractions struct {
	Buy  float64 // fraction of cash on a bullish cross
	Sell float64 // fraction of position on a bearish cross
	Flat float64 // fraction of cash when the averages are equal
}

// SMACross buys when the short moving average sits above the long one,
// trims the position when it sits below, and takes a half-size buy when
// the two are equal.
type SMACross struct {
	f Fractions
}

func NewSMACross(f Fractions) *SMACross {
	return &SMACross{f: f}
}

func (s *SMACross) Decide(ctx context.Context, symbol string, short, long []float64) (types.Decision, error) {
	if len(short) == 0 || len(long) == 0 {
		return types.Decision{}, errors.New("not enough closing prices to decide")
	}

	smaShort := ta.Mean(short)
	smaLong := ta.Mean(long)
	if math.IsNaN(smaShort) || math.IsNaN(smaLong) {
		return types.Decision{}, errors.New("indicator computation produced NaN")
	}

	switch {
	case smaShort > smaLong:
		return types.Decision{Side: types.SideBuy, Multiplier: s.f.Buy, Reason: "short SMA above long SMA"}, nil
	case smaShort < smaLong:
		return types.Decision{Side: types.SideSell, Multiplier: s.f.Sell, Reason: "short SMA below long SMA"}, nil
	default:
		return types.Decision{Side: types.SideBuy, Multiplier: s.f.Flat, Reason: "SMAs equal, half-size buy"}, nil
	}
}
