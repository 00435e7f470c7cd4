// Package domain defines the core data types shared across the stratlab
// platform: market bars, trading signals, and backtest trade records.
package domain

import "time"

// Market identifies a trading venue/market segment.
type Market string

// Supported markets.
const (
	MarketUS Market = "us"
)

// Bar is one OHLCV bar for a symbol. Bars are immutable once fetched; the
// backtest engine borrows them for the duration of a run.
type Bar struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Volume     int64     `json:"volume"`
	TradeCount int64     `json:"trade_count"`
	VWAP       float64   `json:"vwap"`
}

// Signal is the per-bar decision produced by the signal rule layer.
type Signal string

// Signal values.
const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// TradeAction labels the state transition that produced a trade record.
type TradeAction string

// Trade actions.
const (
	TradeBuy        TradeAction = "BUY"
	TradeSell       TradeAction = "SELL"
	TradeStopLoss   TradeAction = "STOP_LOSS"
	TradeTakeProfit TradeAction = "TAKE_PROFIT"
	TradeClose      TradeAction = "CLOSE"
)

// Trade is an immutable record emitted on each position transition during a
// backtest. CapitalAfter is the cash balance immediately after the fill.
type Trade struct {
	Date         time.Time   `json:"date"`
	Action       TradeAction `json:"action"`
	Price        float64     `json:"price"`
	Shares       int64       `json:"shares"`
	CapitalAfter float64     `json:"capital_after"`
}

// IsExit reports whether the action closes a long position.
func (a TradeAction) IsExit() bool {
	switch a {
	case TradeSell, TradeStopLoss, TradeTakeProfit, TradeClose:
		return true
	}
	return false
}
