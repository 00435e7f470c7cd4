package backtest

import (
	"strings"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v, want nil", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr string
	}{
		{"zero rsi period", func(p *Params) { p.RSIPeriod = 0 }, "rsi_period"},
		{"negative rsi period", func(p *Params) { p.RSIPeriod = -5 }, "rsi_period"},
		{"oversold below range", func(p *Params) { p.RSIOversold = -1 }, "rsi_oversold"},
		{"overbought above range", func(p *Params) { p.RSIOverbought = 101 }, "rsi_overbought"},
		{"equal thresholds", func(p *Params) { p.RSIOversold = 70 }, "rsi_oversold"},
		{"inverted thresholds", func(p *Params) { p.RSIOversold = 80 }, "rsi_oversold"},
		{"zero short window", func(p *Params) { p.MAShort = 0 }, "ma_short"},
		{"long window not above short", func(p *Params) { p.MALong = 20 }, "ma_long"},
		{"zero stop loss", func(p *Params) { p.StopLoss = 0 }, "stop_loss"},
		{"stop loss of one", func(p *Params) { p.StopLoss = 1 }, "stop_loss"},
		{"zero take profit", func(p *Params) { p.TakeProfit = 0 }, "take_profit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

// Invalid parameters must be rejected before any bar is examined, so
// Simulate returns the validation error even for an empty series.
func TestSimulateRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.RSIOversold = p.RSIOverbought

	res, err := Simulate(nil, 10000, p)
	if err == nil {
		t.Fatal("Simulate with equal RSI thresholds must fail")
	}
	if res != nil {
		t.Errorf("Simulate returned a result alongside the error: %+v", res)
	}
}
