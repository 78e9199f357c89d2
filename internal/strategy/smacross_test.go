package strategy

import (
	"context"
	"testing"

	"alpaca-trading-bot/internal/store"
	"alpaca-trading-bot/internal/types"
)

func defaultFractions() Fractions {
	return Fractions{Buy: 0.75, Sell: 0.10, Flat: 0.50}
}

func TestDecideBuyOnBullishCross(t *testing.T) {
	s := NewSMACross(defaultFractions())
	d, err := s.Decide(context.Background(), "VOO", []float64{105, 106, 107}, []float64{100, 100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if d.Side != types.SideBuy {
		t.Errorf("expected BUY, got %s", d.Side)
	}
	if d.Multiplier != 0.75 {
		t.Errorf("expected multiplier 0.75, got %f", d.Multiplier)
	}
}

func TestDecideSellOnBearishCross(t *testing.T) {
	s := NewSMACross(defaultFractions())
	d, err := s.Decide(context.Background(), "VOO", []float64{95, 94, 93}, []float64{100, 100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if d.Side != types.SideSell {
		t.Errorf("expected SELL, got %s", d.Side)
	}
	if d.Multiplier != 0.10 {
		t.Errorf("expected multiplier 0.10, got %f", d.Multiplier)
	}
}

func TestDecideHalfSizeBuyWhenEqual(t *testing.T) {
	s := NewSMACross(defaultFractions())
	d, err := s.Decide(context.Background(), "VOO", []float64{100, 100}, []float64{100, 100, 100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if d.Side != types.SideBuy {
		t.Errorf("expected BUY, got %s", d.Side)
	}
	if d.Multiplier != 0.50 {
		t.Errorf("expected multiplier 0.50, got %f", d.Multiplier)
	}
}

func TestDecideErrorsOnEmptySeries(t *testing.T) {
	s := NewSMACross(defaultFractions())
	if _, err := s.Decide(context.Background(), "VOO", nil, []float64{100}); err == nil {
		t.Error("expected error for empty short series")
	}
}

func TestFactory(t *testing.T) {
	cfg := &store.Config{}
	cfg.Strategy.Name = "SMA_CROSS"
	cfg.Strategy.BuyFraction = 0.75
	cfg.Strategy.SellFraction = 0.10
	cfg.Strategy.FlatFraction = 0.50
	if _, ok := New(cfg).(*SMACross); !ok {
		t.Error("expected SMACross for SMA_CROSS")
	}

	cfg.Strategy.Name = "UNKNOWN"
	d := New(cfg)
	if _, ok := d.(*Noop); !ok {
		t.Error("expected Noop fallback for unknown strategy")
	}
	dec, err := d.Decide(context.Background(), "VOO", []float64{1}, []float64{1})
	if err != nil || dec.Side != types.SideHold {
		t.Errorf("noop should HOLD, got %+v err %v", dec, err)
	}
}
