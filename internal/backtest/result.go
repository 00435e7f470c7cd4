package backtest

import (
	"encoding/json"
	"time"

	"stratlab/internal/domain"
	"stratlab/internal/store"
)

// Result is the terminal artifact of one backtest run. It is produced once,
// never mutated afterwards, and safe to serialize for reporting.
type Result struct {
	Symbol         string         `json:"symbol"`
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	InitialCapital float64        `json:"initial_capital"`
	FinalCapital   float64        `json:"final_capital"`
	TotalReturn    float64        `json:"total_return"`
	Trades         []domain.Trade `json:"trades"`
	EquityCurve    []float64      `json:"equity_curve"`
	Metrics        Metrics        `json:"metrics"`
	Params         Params         `json:"params"`
}

// Record flattens the result into a storable record, with the trade log,
// equity curve, and parameters serialized as JSON.
func (r *Result) Record() (*store.ResultRecord, error) {
	paramsJSON, err := json.Marshal(r.Params)
	if err != nil {
		return nil, err
	}
	tradesJSON, err := json.Marshal(r.Trades)
	if err != nil {
		return nil, err
	}
	equityJSON, err := json.Marshal(r.EquityCurve)
	if err != nil {
		return nil, err
	}

	return &store.ResultRecord{
		Symbol:           r.Symbol,
		Start:            r.Start,
		End:              r.End,
		InitialCapital:   r.InitialCapital,
		FinalCapital:     r.FinalCapital,
		TotalReturn:      r.TotalReturn,
		AnnualizedReturn: r.Metrics.AnnualizedReturn,
		Volatility:       r.Metrics.Volatility,
		SharpeRatio:      r.Metrics.SharpeRatio,
		MaxDrawdown:      r.Metrics.MaxDrawdown,
		WinRate:          r.Metrics.WinRate,
		ProfitFactor:     r.Metrics.ProfitFactor,
		BuyHoldReturn:    r.Metrics.BuyHoldReturn,
		ExcessReturn:     r.Metrics.ExcessReturn,
		TotalTrades:      r.Metrics.TotalTrades,
		ParamsJSON:       string(paramsJSON),
		TradesJSON:       string(tradesJSON),
		EquityJSON:       string(equityJSON),
	}, nil
}
