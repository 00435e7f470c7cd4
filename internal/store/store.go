// Package store defines storage interfaces for daily bar data and finished
// backtest results, with Parquet and SQLite implementations.
package store

import (
	"context"
	"time"

	"stratlab/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol and market within
	// [start, end], in chronological order.
	ReadBars(ctx context.Context, symbol string, market string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the given market.
	ListSymbols(ctx context.Context, market string) ([]string, error)
}

// ResultRecord is the storable form of a finished backtest: summary columns
// for listing and filtering, plus the trade log, equity curve, and parameters
// serialized as JSON.
type ResultRecord struct {
	ID               int64     `json:"id"`
	Symbol           string    `json:"symbol"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	CreatedAt        time.Time `json:"created_at"`
	InitialCapital   float64   `json:"initial_capital"`
	FinalCapital     float64   `json:"final_capital"`
	TotalReturn      float64   `json:"total_return"`
	AnnualizedReturn float64   `json:"annualized_return"`
	Volatility       float64   `json:"volatility"`
	SharpeRatio      float64   `json:"sharpe_ratio"`
	MaxDrawdown      float64   `json:"max_drawdown"`
	WinRate          float64   `json:"win_rate"`
	ProfitFactor     float64   `json:"profit_factor"`
	BuyHoldReturn    float64   `json:"buy_hold_return"`
	ExcessReturn     float64   `json:"excess_return"`
	TotalTrades      int       `json:"total_trades"`
	ParamsJSON       string    `json:"params_json"`
	TradesJSON       string    `json:"trades_json"`
	EquityJSON       string    `json:"equity_json"`
}

// ResultStore persists and retrieves backtest result records.
type ResultStore interface {
	// SaveResult inserts a new result record and returns its assigned ID.
	SaveResult(ctx context.Context, rec *ResultRecord) (int64, error)

	// GetResult retrieves a single result by its ID.
	GetResult(ctx context.Context, id int64) (*ResultRecord, error)

	// ListResults returns the most recent results, newest first, up to
	// limit. An empty symbol matches all symbols.
	ListResults(ctx context.Context, symbol string, limit int) ([]ResultRecord, error)
}
