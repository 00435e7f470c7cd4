// Package backtest evaluates a rule-based long-only trading strategy against
// historical daily bars and reports return, risk, and trade statistics.
//
// The simulation is an inherently sequential scan: each bar's decision
// depends on the position state carried from the previous bar, so a single
// run never parallelizes. Independent runs share no mutable state and may
// execute concurrently.
package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"stratlab/internal/domain"
	"stratlab/internal/indicator"
	"stratlab/internal/store"
)

// Backtester replays historical bar data through the strategy rules and
// computes performance metrics.
type Backtester struct {
	store store.BarStore
	log   *slog.Logger
}

// NewBacktester creates a Backtester that reads bars from the given store.
func NewBacktester(barStore store.BarStore) *Backtester {
	return &Backtester{
		store: barStore,
		log:   slog.Default().With("component", "backtest"),
	}
}

// Run executes a backtest for the symbol over [start, end], starting with
// initialCapital. An empty or too-short bar history yields a degenerate
// zero-trade result, not an error; only invalid parameters are rejected.
func (bt *Backtester) Run(
	ctx context.Context,
	symbol string,
	start, end time.Time,
	initialCapital float64,
	p Params,
) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bars, err := bt.store.ReadBars(ctx, symbol, string(domain.MarketUS), start, end)
	if err != nil {
		return nil, fmt.Errorf("reading bars for %s: %w", symbol, err)
	}

	res, err := Simulate(bars, initialCapital, p)
	if err != nil {
		return nil, err
	}
	res.Symbol = symbol
	res.Start = start
	res.End = end

	bt.log.Info("backtest finished",
		"symbol", symbol,
		"bars", len(bars),
		"trades", len(res.Trades),
		"totalReturn", res.TotalReturn,
	)
	return res, nil
}

// ---------------------------------------------------------------------------
// Position state machine
// ---------------------------------------------------------------------------

// position is the mutable simulation state. shares == 0 means FLAT,
// shares > 0 means LONG. It is owned exclusively by one Simulate call.
type position struct {
	capital    float64
	shares     int64
	entryPrice float64
}

// step applies one bar's signal and the stop-loss/take-profit rules to the
// position, returning the trade emitted, if any.
//
// Evaluation order within a bar: BUY entry while FLAT, SELL exit while LONG,
// then the stop/take checks on whatever position remains. A SELL exit zeroes
// the shares before the stop checks run, so at most one exit fires per bar.
// An entry sized to zero shares (capital below one share) leaves the
// position FLAT with no trade recorded.
func (pos *position) step(bar domain.Bar, sig domain.Signal, p Params) *domain.Trade {
	var trade *domain.Trade

	switch {
	case pos.shares == 0 && sig == domain.SignalBuy:
		if bar.Close <= 0 {
			return nil
		}
		shares := int64(math.Floor(pos.capital / bar.Close))
		if shares <= 0 {
			return nil
		}
		pos.capital -= float64(shares) * bar.Close
		pos.shares = shares
		pos.entryPrice = bar.Close
		trade = &domain.Trade{
			Date:         bar.Timestamp,
			Action:       domain.TradeBuy,
			Price:        bar.Close,
			Shares:       shares,
			CapitalAfter: pos.capital,
		}

	case pos.shares > 0 && sig == domain.SignalSell:
		trade = pos.liquidate(bar, domain.TradeSell)
	}

	if pos.shares > 0 {
		change := (bar.Close - pos.entryPrice) / pos.entryPrice
		switch {
		case change <= -p.StopLoss:
			trade = pos.liquidate(bar, domain.TradeStopLoss)
		case change >= p.TakeProfit:
			trade = pos.liquidate(bar, domain.TradeTakeProfit)
		}
	}

	return trade
}

// liquidate sells the whole position at the bar's close and returns the
// resulting trade record.
func (pos *position) liquidate(bar domain.Bar, action domain.TradeAction) *domain.Trade {
	shares := pos.shares
	pos.capital += float64(shares) * bar.Close
	pos.shares = 0
	return &domain.Trade{
		Date:         bar.Timestamp,
		Action:       action,
		Price:        bar.Close,
		Shares:       shares,
		CapitalAfter: pos.capital,
	}
}

// Simulate runs the position state machine over the bar series and computes
// performance metrics. It is a pure function of its inputs: the same series
// and parameters always produce an identical result, and the bars are never
// mutated.
//
// Bars whose indicators are still warming up contribute an equity point but
// no trading decision. A series shorter than the longest indicator window
// therefore produces a flat equity curve at initialCapital and an empty
// trade log.
func Simulate(bars []domain.Bar, initialCapital float64, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	rsi := indicator.RSI(closes, p.RSIPeriod)
	maShort := indicator.SMA(closes, p.MAShort)
	maLong := indicator.SMA(closes, p.MALong)

	pos := position{capital: initialCapital}
	equity := make([]float64, 0, len(bars))
	var trades []domain.Trade

	for i, bar := range bars {
		// No decisions during warm-up, but the equity curve has one point
		// per bar regardless.
		if math.IsNaN(rsi[i]) || math.IsNaN(maShort[i]) || math.IsNaN(maLong[i]) {
			equity = append(equity, pos.capital+float64(pos.shares)*bar.Close)
			continue
		}

		sig := Evaluate(rsi[i], maShort[i], maLong[i], p)
		if t := pos.step(bar, sig, p); t != nil {
			trades = append(trades, *t)
		}
		equity = append(equity, pos.capital+float64(pos.shares)*bar.Close)
	}

	// Force-close any open position at the final bar.
	if pos.shares > 0 {
		last := bars[len(bars)-1]
		trades = append(trades, *pos.liquidate(last, domain.TradeClose))
	}

	finalCapital := initialCapital
	totalReturn := 0.0
	if len(equity) > 0 {
		finalCapital = equity[len(equity)-1]
		if equity[0] != 0 {
			totalReturn = (finalCapital - equity[0]) / equity[0]
		}
	}

	return &Result{
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    totalReturn,
		Trades:         trades,
		EquityCurve:    equity,
		Metrics:        computeMetrics(equity, trades, bars),
		Params:         p,
	}, nil
}
