// Package report renders backtest results as human-readable text. It only
// formats the numbers a result record already carries; it never recomputes
// or alters them.
package report

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"stratlab/internal/backtest"
)

// Render produces a markdown-style performance report for one result.
func Render(res *backtest.Result) string {
	m := res.Metrics

	var b strings.Builder
	fmt.Fprintf(&b, "## Backtest Results for %s\n\n", res.Symbol)

	b.WriteString("### Returns\n")
	fmt.Fprintf(&b, "- Total Return: %s\n", FormatPct(m.TotalReturn))
	fmt.Fprintf(&b, "- Annualized Return: %s\n", FormatPct(m.AnnualizedReturn))
	fmt.Fprintf(&b, "- Buy & Hold Return: %s\n", FormatPct(m.BuyHoldReturn))
	fmt.Fprintf(&b, "- Excess Return: %s\n\n", FormatPct(m.ExcessReturn))

	b.WriteString("### Risk\n")
	fmt.Fprintf(&b, "- Volatility: %s\n", FormatPct(m.Volatility))
	fmt.Fprintf(&b, "- Sharpe Ratio: %.2f\n", m.SharpeRatio)
	fmt.Fprintf(&b, "- Maximum Drawdown: %s\n\n", FormatPct(m.MaxDrawdown))

	b.WriteString("### Trading\n")
	fmt.Fprintf(&b, "- Total Trades: %d\n", m.TotalTrades)
	fmt.Fprintf(&b, "- Win Rate: %s\n", FormatPct(m.WinRate))
	fmt.Fprintf(&b, "- Profit Factor: %.2f\n", m.ProfitFactor)
	fmt.Fprintf(&b, "- Initial Capital: %s\n", FormatMoney(res.InitialCapital))
	fmt.Fprintf(&b, "- Final Capital: %s\n\n", FormatMoney(res.FinalCapital))

	b.WriteString("### Strategy Parameters\n")
	p := res.Params
	fmt.Fprintf(&b, "- rsi_period: %d\n", p.RSIPeriod)
	fmt.Fprintf(&b, "- rsi_oversold: %g\n", p.RSIOversold)
	fmt.Fprintf(&b, "- rsi_overbought: %g\n", p.RSIOverbought)
	fmt.Fprintf(&b, "- ma_short: %d\n", p.MAShort)
	fmt.Fprintf(&b, "- ma_long: %d\n", p.MALong)
	fmt.Fprintf(&b, "- stop_loss: %g\n", p.StopLoss)
	fmt.Fprintf(&b, "- take_profit: %g\n", p.TakeProfit)

	return b.String()
}

// RenderComparison produces an aligned table of summary metrics for several
// strategies run over the same symbol.
func RenderComparison(comparisons []backtest.Comparison) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, "STRATEGY\tTOTAL RETURN\tSHARPE\tMAX DRAWDOWN\tWIN RATE\tTRADES")
	for _, c := range comparisons {
		m := c.Result.Metrics
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%d\n",
			c.Name,
			FormatPct(m.TotalReturn),
			m.SharpeRatio,
			FormatPct(m.MaxDrawdown),
			FormatPct(m.WinRate),
			m.TotalTrades,
		)
	}
	w.Flush()
	return b.String()
}

// FormatPct formats a fractional value as a percentage with two decimals.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatMoney formats a dollar amount with comma-grouped thousands.
func FormatMoney(v float64) string {
	cents := int64(math.Round(v * 100))
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("$%s.%02d", formatInt(cents/100), frac)
}

// formatInt formats an integer with comma separators.
func formatInt(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
