// Package alpaca implements the Broker interface on top of the Alpaca
// trading and market data REST APIs.
package alpaca

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alpaca-trading-bot/internal/interfaces"
	"alpaca-trading-bot/internal/types"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

const (
	liveBaseURL  = "https://api.alpaca.markets"
	paperBaseURL = "https://paper-api.alpaca.markets"
)

type Params struct {
	Mode      string // LIVE or DRY_RUN
	APIKeyID  string
	APISecret string
	Paper     bool
}

type Alpaca struct {
	p       Params
	trading *alpaca.Client
	data    *marketdata.Client
}

var _ interfaces.Broker = (*Alpaca)(nil)

func New(p Params) *Alpaca {
	baseURL := liveBaseURL
	if p.Paper {
		baseURL = paperBaseURL
	}
	return &Alpaca{
		p: p,
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    p.APIKeyID,
			APISecret: p.APISecret,
			BaseURL:   baseURL,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    p.APIKeyID,
			APISecret: p.APISecret,
		}),
	}
}

// BaseURL returns the REST endpoint matching the paper flag. The stream
// client derives its websocket URL from the same host.
func (a *Alpaca) BaseURL() string {
	if a.p.Paper {
		return paperBaseURL
	}
	return liveBaseURL
}

func (a *Alpaca) Account(ctx context.Context) (types.Account, error) {
	acct, err := a.trading.GetAccount()
	if err != nil {
		return types.Account{}, fmt.Errorf("get account: %w", err)
	}
	cfgs, err := a.trading.GetAccountConfigurations()
	if err != nil {
		return types.Account{}, fmt.Errorf("get account configurations: %w", err)
	}
	return types.Account{
		Status:            string(acct.Status),
		Cash:              acct.Cash.InexactFloat64(),
		FractionalTrading: cfgs.FractionalTrading,
	}, nil
}

func (a *Alpaca) DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error) {
	now := time.Now()
	// Ends at the last completed session; weekends and holidays mean the
	// window can return fewer than n bars, which the strategy tolerates.
	end := now.AddDate(0, 0, -1)
	start := now.AddDate(0, 0, -(n + 1))

	bars, err := a.data.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      start,
		End:        end,
		TotalLimit: n,
	})
	if err != nil {
		return nil, fmt.Errorf("get daily bars for %s: %w", symbol, err)
	}

	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		closes = append(closes, b.Close)
	}
	return closes, nil
}

func (a *Alpaca) PlaceOrder(ctx context.Context, req types.OrderReq) (types.Order, error) {
	if a.p.Mode == "DRY_RUN" {
		return simulatedOrder(req), nil
	}
	if a.p.APIKeyID == "" || a.p.APISecret == "" {
		return types.Order{}, errors.New("missing API credentials")
	}

	placeReq := alpaca.PlaceOrderRequest{
		Symbol:        req.Symbol,
		Side:          toSide(req.Side),
		Type:          alpaca.Market,
		TimeInForce:   alpaca.Day,
		ClientOrderID: req.ClientOrderID,
	}
	switch {
	case req.Notional > 0:
		n := decimal.NewFromFloat(req.Notional).Round(2)
		placeReq.Notional = &n
	case req.Qty > 0:
		q := decimal.NewFromFloat(req.Qty)
		placeReq.Qty = &q
	default:
		return types.Order{}, errors.New("either qty or notional must be provided")
	}

	order, err := a.trading.PlaceOrder(placeReq)
	if err != nil {
		return types.Order{}, fmt.Errorf("place %s order for %s: %w", req.Side, req.Symbol, err)
	}
	return fromOrder(order), nil
}

func (a *Alpaca) GetOrder(ctx context.Context, orderID string) (types.Order, error) {
	if a.p.Mode == "DRY_RUN" && strings.HasPrefix(orderID, "SIM-") {
		return types.Order{ID: orderID, Status: types.OrderFilled}, nil
	}
	order, err := a.trading.GetOrder(orderID)
	if err != nil {
		return types.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return fromOrder(order), nil
}

func (a *Alpaca) CancelOrder(ctx context.Context, orderID string) error {
	if a.p.Mode == "DRY_RUN" && strings.HasPrefix(orderID, "SIM-") {
		return nil
	}
	if err := a.trading.CancelOrder(orderID); err != nil {
		return fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return nil
}

func (a *Alpaca) Position(ctx context.Context, symbol string) (*types.Position, error) {
	pos, err := a.trading.GetPosition(symbol)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("get position for %s: %w", symbol, err)
	}
	return &types.Position{
		Symbol: pos.Symbol,
		Qty:    pos.Qty.InexactFloat64(),
	}, nil
}

func simulatedOrder(req types.OrderReq) types.Order {
	return types.Order{
		ID:            fmt.Sprintf("SIM-%d", time.Now().UnixNano()),
		ClientOrderID: req.ClientOrderID,
		Symbol:        req.Symbol,
		Side:          req.Side,
		Status:        types.OrderFilled,
	}
}

func toSide(side string) alpaca.Side {
	if side == types.SideSell {
		return alpaca.Sell
	}
	return alpaca.Buy
}

func fromOrder(o *alpaca.Order) types.Order {
	out := types.Order{
		ID:            o.ID,
		ClientOrderID: o.ClientOrderID,
		Symbol:        o.Symbol,
		Side:          strings.ToUpper(string(o.Side)),
		Status:        o.Status,
		FilledQty:     o.FilledQty.InexactFloat64(),
	}
	if o.FilledAvgPrice != nil {
		out.FilledAvgPrice = o.FilledAvgPrice.InexactFloat64()
	}
	return out
}
