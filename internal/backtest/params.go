package backtest

import "fmt"

// Params configures one backtest run. All fields are fixed for the duration
// of a run.
type Params struct {
	RSIPeriod     int     `yaml:"rsi_period" json:"rsi_period"`
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought"`
	MAShort       int     `yaml:"ma_short" json:"ma_short"`
	MALong        int     `yaml:"ma_long" json:"ma_long"`
	StopLoss      float64 `yaml:"stop_loss" json:"stop_loss"`   // fraction, e.g. 0.05
	TakeProfit    float64 `yaml:"take_profit" json:"take_profit"` // fraction, e.g. 0.10
}

// DefaultParams returns the standard parameter set: 14-period RSI with 30/70
// thresholds, 20/50 moving averages, 5% stop loss, 10% take profit.
func DefaultParams() Params {
	return Params{
		RSIPeriod:     14,
		RSIOversold:   30,
		RSIOverbought: 70,
		MAShort:       20,
		MALong:        50,
		StopLoss:      0.05,
		TakeProfit:    0.10,
	}
}

// Validate rejects parameter sets that violate the strategy invariants. It is
// called before any simulation executes; invalid values are never clamped.
func (p Params) Validate() error {
	if p.RSIPeriod <= 0 {
		return fmt.Errorf("rsi_period must be positive, got %d", p.RSIPeriod)
	}
	if p.RSIOversold < 0 || p.RSIOversold > 100 {
		return fmt.Errorf("rsi_oversold must be within [0, 100], got %g", p.RSIOversold)
	}
	if p.RSIOverbought < 0 || p.RSIOverbought > 100 {
		return fmt.Errorf("rsi_overbought must be within [0, 100], got %g", p.RSIOverbought)
	}
	if p.RSIOversold >= p.RSIOverbought {
		return fmt.Errorf("rsi_oversold (%g) must be below rsi_overbought (%g)", p.RSIOversold, p.RSIOverbought)
	}
	if p.MAShort <= 0 {
		return fmt.Errorf("ma_short must be positive, got %d", p.MAShort)
	}
	if p.MALong <= p.MAShort {
		return fmt.Errorf("ma_long (%d) must be greater than ma_short (%d)", p.MALong, p.MAShort)
	}
	if p.StopLoss <= 0 || p.StopLoss >= 1 {
		return fmt.Errorf("stop_loss must be within (0, 1), got %g", p.StopLoss)
	}
	if p.TakeProfit <= 0 {
		return fmt.Errorf("take_profit must be positive, got %g", p.TakeProfit)
	}
	return nil
}
