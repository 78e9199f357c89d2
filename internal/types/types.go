package types

// Account is the subset of broker account state the bot cares about.
type Account struct {
	Status            string
	Cash              float64
	FractionalTrading bool
}

type Position struct {
	Symbol string
	Qty    float64
}

// Decision is the strategy output for a single run.
// Side is BUY, SELL or HOLD. Multiplier scales the trade amount:
// fraction of available cash for buys, fraction of held qty for sells.
type Decision struct {
	Side       string  `json:"side"`
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
}

type OrderReq struct {
	Symbol, Side  string
	Qty           float64 // fractional shares, sells
	Notional      float64 // dollar amount, buys
	ClientOrderID string
}

type Order struct {
	ID             string
	ClientOrderID  string
	Symbol, Side   string
	Status         string
	FilledQty      float64
	FilledAvgPrice float64
}

// TradeUpdate is one event from the account trade-updates stream.
type TradeUpdate struct {
	Event   string
	OrderID string
	Status  string
}

type Headline struct {
	Source, Title, URL string
}

// StepResult summarizes one strategy run for structured output.
type StepResult struct {
	Symbol    string   `json:"symbol"`
	Decision  Decision `json:"decision"`
	Amount    float64  `json:"amount,omitempty"`
	TradeType string   `json:"trade_type,omitempty"`
	OrderID   string   `json:"order_id,omitempty"`
	Status    string   `json:"status"`
	Time      int64    `json:"time"`
}

const (
	OrderFilled   = "filled"
	OrderCanceled = "canceled"

	SideBuy  = "BUY"
	SideSell = "SELL"
	SideHold = "HOLD"

	TradeNotional   = "NOTIONAL"
	TradeFractional = "FRACTIONAL"

	OutcomeFilled    = "FILLED"
	OutcomeCancelled = "CANCELLED"
	OutcomeSkipped   = "SKIPPED"
)
