package backtest

import (
	"math"
	"testing"

	"stratlab/internal/domain"
)

func TestEvaluate(t *testing.T) {
	p := DefaultParams() // oversold 30, overbought 70
	nan := math.NaN()

	tests := []struct {
		name    string
		rsi     float64
		maShort float64
		maLong  float64
		want    domain.Signal
	}{
		{"nan rsi holds", nan, 110, 100, domain.SignalHold},
		{"nan short ma holds", 25, nan, 100, domain.SignalHold},
		{"nan long ma holds", 25, 110, nan, domain.SignalHold},
		{"oversold and uptrend buys", 25, 110, 100, domain.SignalBuy},
		{"oversold alone does not buy", 25, 90, 100, domain.SignalSell},
		{"uptrend alone does not buy", 50, 110, 100, domain.SignalHold},
		{"overbought sells", 75, 110, 100, domain.SignalSell},
		{"downtrend sells", 50, 90, 100, domain.SignalSell},
		{"equal averages hold", 50, 100, 100, domain.SignalHold},
		{"boundary rsi holds", 30, 110, 100, domain.SignalHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.rsi, tt.maShort, tt.maLong, p)
			if got != tt.want {
				t.Errorf("Evaluate(%v, %v, %v) = %v, want %v",
					tt.rsi, tt.maShort, tt.maLong, got, tt.want)
			}
		})
	}
}

// A bar that satisfies the oversold entry condition but also sits below the
// long average must resolve to SELL: the exit rule wins whenever its
// disjunction is true.
func TestEvaluateSellDominance(t *testing.T) {
	p := DefaultParams()
	if got := Evaluate(25, 90, 100, p); got != domain.SignalSell {
		t.Errorf("Evaluate(25, 90, 100) = %v, want SELL", got)
	}
}
