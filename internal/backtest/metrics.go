package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"stratlab/internal/domain"
)

// tradingDaysPerYear is the annualization convention used throughout.
const tradingDaysPerYear = 252

// Metrics holds the risk/return statistics derived from one backtest run.
type Metrics struct {
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	WinRate          float64 `json:"win_rate"`
	ProfitFactor     float64 `json:"profit_factor"`
	TotalTrades      int     `json:"total_trades"`
	BuyHoldReturn    float64 `json:"buy_hold_return"`
	ExcessReturn     float64 `json:"excess_return"`
}

// computeMetrics derives performance statistics from the equity curve, trade
// log, and raw bar series. Every arithmetic singularity has an explicit
// fallback; the returned struct never carries NaN or Inf.
func computeMetrics(equity []float64, trades []domain.Trade, bars []domain.Bar) Metrics {
	m := Metrics{TotalTrades: len(trades)}
	if len(equity) == 0 {
		return m
	}

	if equity[0] != 0 {
		m.TotalReturn = (equity[len(equity)-1] - equity[0]) / equity[0]
	}

	// Linear scaling to a 252-day year, not geometric compounding. Kept for
	// compatibility with the metric consumers downstream.
	m.AnnualizedReturn = m.TotalReturn * (tradingDaysPerYear / float64(len(equity)))

	daily := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			daily = append(daily, 0)
			continue
		}
		daily = append(daily, (equity[i]-equity[i-1])/equity[i-1])
	}

	// Annualized volatility and Sharpe ratio. Sample standard deviation
	// needs at least two returns; below that, and for a curve that never
	// moves, both stay 0 rather than going undefined.
	if len(daily) >= 2 {
		vol := stat.StdDev(daily, nil) * math.Sqrt(tradingDaysPerYear)
		m.Volatility = vol
		if vol > 0 {
			m.SharpeRatio = stat.Mean(daily, nil) * tradingDaysPerYear / vol
		}
	}

	// Maximum drawdown of the cumulative-return curve from its running peak.
	cum, peak := 1.0, 1.0
	for _, r := range daily {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		if dd := (cum - peak) / peak; dd < m.MaxDrawdown {
			m.MaxDrawdown = dd
		}
	}

	// Trade-quality statistics. SELL and TAKE_PROFIT exits count as wins,
	// STOP_LOSS exits as losses; the denominator is the full trade log,
	// entries included.
	if len(trades) > 0 {
		var winPrices, lossPrices []float64
		for _, t := range trades {
			switch t.Action {
			case domain.TradeSell, domain.TradeTakeProfit:
				winPrices = append(winPrices, t.Price)
			case domain.TradeStopLoss:
				lossPrices = append(lossPrices, t.Price)
			}
		}
		m.WinRate = float64(len(winPrices)) / float64(len(trades))

		// ProfitFactor divides the mean winning exit price by the mean
		// losing exit price — prices, not profits. This mirrors the metric
		// consumers already depend on, even though a profit-based ratio
		// would usually be expected here. Convention: 0 when either side
		// has no trades.
		if len(winPrices) > 0 && len(lossPrices) > 0 {
			m.ProfitFactor = stat.Mean(winPrices, nil) / stat.Mean(lossPrices, nil)
		}
	}

	if len(bars) > 0 && bars[0].Close != 0 {
		m.BuyHoldReturn = (bars[len(bars)-1].Close - bars[0].Close) / bars[0].Close
	}
	m.ExcessReturn = m.TotalReturn - m.BuyHoldReturn

	return m
}
