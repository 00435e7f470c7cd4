package httpapi

import "stratlab/internal/backtest"

// BacktestRequest is the payload for POST /api/backtest.
type BacktestRequest struct {
	Symbol         string           `json:"symbol"`
	Start          string           `json:"start"` // YYYY-MM-DD; default two years before end
	End            string           `json:"end"`   // YYYY-MM-DD; default today
	InitialCapital float64          `json:"initial_capital"` // default 10000
	Params         *backtest.Params `json:"params"`          // default DefaultParams
}

// BacktestResponse wraps a finished run with its stored record ID.
type BacktestResponse struct {
	ID     int64            `json:"id"`
	Result *backtest.Result `json:"result"`
}

// ResultSummary is the listing view of a stored result, without the bulky
// trade log and equity curve payloads.
type ResultSummary struct {
	ID           int64   `json:"id"`
	Symbol       string  `json:"symbol"`
	CreatedAt    string  `json:"created_at"`
	TotalReturn  float64 `json:"total_return"`
	SharpeRatio  float64 `json:"sharpe_ratio"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	WinRate      float64 `json:"win_rate"`
	TotalTrades  int     `json:"total_trades"`
	ExcessReturn float64 `json:"excess_return"`
}

type errorResponse struct {
	Error string `json:"error"`
}
