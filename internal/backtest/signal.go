package backtest

import (
	"math"

	"stratlab/internal/domain"
)

// Evaluate maps one bar's indicator readings to a trading signal.
//
// Precedence, first match wins:
//
//  1. any undefined (NaN) input → HOLD
//  2. RSI below oversold AND short MA above long MA → BUY
//  3. RSI above overbought OR short MA below long MA → SELL
//  4. otherwise → HOLD
//
// The asymmetry is intentional: entering requires momentum and trend to
// agree, while either one alone is enough to exit.
func Evaluate(rsi, maShort, maLong float64, p Params) domain.Signal {
	if math.IsNaN(rsi) || math.IsNaN(maShort) || math.IsNaN(maLong) {
		return domain.SignalHold
	}

	switch {
	case rsi < p.RSIOversold && maShort > maLong:
		return domain.SignalBuy
	case rsi > p.RSIOverbought || maShort < maLong:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}
