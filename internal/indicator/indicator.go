// Package indicator computes technical indicators over closing-price series.
//
// Every function returns a slice aligned index-for-index with its input.
// Entries for which the rolling window has insufficient history are NaN;
// callers must check math.IsNaN before acting on a value, since a computed
// zero and "no value yet" are different things.
package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RSI computes the Relative Strength Index over a trailing window of period
// price deltas. Average gain and average loss are simple rolling means of the
// positive and negative deltas; RSI = 100 - 100/(1+RS) with RS the
// gain/loss ratio.
//
// Singularities are made explicit instead of propagating NaN into trading
// decisions: a window with losses averaging zero yields 100 when any gain is
// present and 50 when the window is completely flat.
//
// The first defined value appears at index period (one price is consumed by
// the differencing); earlier entries are NaN.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}

		// Slide the window: drop the delta that fell out.
		if i > period {
			old := closes[i-period] - closes[i-period-1]
			if old > 0 {
				gainSum -= old
			} else {
				lossSum += old
			}
		}

		if i < period {
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		switch {
		case avgLoss > 0:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		case avgGain > 0:
			out[i] = 100
		default:
			out[i] = 50
		}
	}
	return out
}

// SMA computes the simple moving average over a trailing window. Entries
// before the window is full are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing factor
// 2/(span+1), seeded at the first value. Every entry is defined.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACD computes the moving average convergence/divergence line
// (EMA(fast) - EMA(slow)), its signal line (EMA of the MACD line), and the
// histogram (MACD - signal).
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine, histogram []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = EMA(macd, signal)

	histogram = make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, histogram
}

// Bollinger computes Bollinger bands: the middle band is the window SMA, the
// upper and lower bands sit stdDev sample standard deviations above and below
// it. Warm-up entries are NaN in all three bands.
func Bollinger(closes []float64, window int, stdDev float64) (middle, upper, lower []float64) {
	middle = SMA(closes, window)
	upper = nanSlice(len(closes))
	lower = nanSlice(len(closes))
	if window <= 1 {
		return middle, upper, lower
	}

	for i := window - 1; i < len(closes); i++ {
		sd := stat.StdDev(closes[i-window+1:i+1], nil)
		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}
	return middle, upper, lower
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
