// Package stream consumes the Alpaca account trade-updates websocket and
// republishes order events on a channel. The order monitor uses it to react
// to fills faster than the status poll.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"alpaca-trading-bot/internal/logger"
	"alpaca-trading-bot/internal/types"

	"github.com/gorilla/websocket"
)

const reconnectDelay = 5 * time.Second

type Params struct {
	// BaseURL is the REST endpoint; the websocket URL is derived from it.
	BaseURL   string
	APIKeyID  string
	APISecret string
}

type Client struct {
	p       Params
	updates chan types.TradeUpdate
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(p Params) *Client {
	return &Client{
		p:       p,
		updates: make(chan types.TradeUpdate, 16),
	}
}

// Updates returns the channel trade events are delivered on.
func (c *Client) Updates() <-chan types.TradeUpdate {
	return c.updates
}

// Start launches the reconnecting read loop. Safe to call once.
func (c *Client) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx)
}

func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
}

func (c *Client) run(ctx context.Context) {
	defer close(c.done)
	url := wsURL(c.p.BaseURL)

	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.readSession(ctx, url); err != nil && ctx.Err() == nil {
			logger.Warn(ctx, "Trade-updates stream disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Client) readSession(ctx context.Context, url string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	// Unblock ReadJSON when the context is cancelled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if err := conn.WriteJSON(map[string]any{
		"action": "auth",
		"key":    c.p.APIKeyID,
		"secret": c.p.APISecret,
	}); err != nil {
		return fmt.Errorf("send auth: %w", err)
	}

	authed := false
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		update, kind, err := parseFrame(raw)
		if err != nil {
			logger.Debug(ctx, "Skipping unparseable stream frame", "error", err)
			continue
		}

		switch kind {
		case frameAuthorized:
			authed = true
			logger.Info(ctx, "Trade-updates stream authorized")
			if err := conn.WriteJSON(map[string]any{
				"action": "listen",
				"data":   map[string]any{"streams": []string{"trade_updates"}},
			}); err != nil {
				return fmt.Errorf("send listen: %w", err)
			}
		case frameUnauthorized:
			return errors.New("stream authorization rejected")
		case frameTradeUpdate:
			if !authed {
				continue
			}
			select {
			case c.updates <- update:
			default:
				// Slow consumer; the poll loop still catches the fill.
				logger.Warn(ctx, "Dropping trade update, channel full", "order_id", update.OrderID)
			}
		}
	}
}

type frameKind int

const (
	frameOther frameKind = iota
	frameAuthorized
	frameUnauthorized
	frameTradeUpdate
)

type frame struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

type authData struct {
	Status string `json:"status"`
}

type tradeUpdateData struct {
	Event string `json:"event"`
	Order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"order"`
}

func parseFrame(raw []byte) (types.TradeUpdate, frameKind, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return types.TradeUpdate{}, frameOther, err
	}

	switch f.Stream {
	case "authorization":
		var a authData
		if err := json.Unmarshal(f.Data, &a); err != nil {
			return types.TradeUpdate{}, frameOther, err
		}
		if a.Status == "authorized" {
			return types.TradeUpdate{}, frameAuthorized, nil
		}
		return types.TradeUpdate{}, frameUnauthorized, nil
	case "trade_updates":
		var d tradeUpdateData
		if err := json.Unmarshal(f.Data, &d); err != nil {
			return types.TradeUpdate{}, frameOther, err
		}
		return types.TradeUpdate{
			Event:   d.Event,
			OrderID: d.Order.ID,
			Status:  d.Order.Status,
		}, frameTradeUpdate, nil
	default:
		return types.TradeUpdate{}, frameOther, nil
	}
}

func wsURL(baseURL string) string {
	u := strings.Replace(baseURL, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return strings.TrimSuffix(u, "/") + "/stream"
}
