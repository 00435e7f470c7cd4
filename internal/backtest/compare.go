package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stratlab/internal/domain"
)

// Comparison pairs a named parameter set with its backtest result.
type Comparison struct {
	Name   string  `json:"name"`
	Result *Result `json:"result"`
}

// Compare runs each named parameter set over the same symbol and date range
// and returns the results sorted by name. The bar series is read once and
// shared read-only across runs. Any invalid parameter set fails the whole
// comparison before the first simulation.
func (bt *Backtester) Compare(
	ctx context.Context,
	symbol string,
	start, end time.Time,
	initialCapital float64,
	strategies map[string]Params,
) ([]Comparison, error) {
	for name, p := range strategies {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
	}

	bars, err := bt.store.ReadBars(ctx, symbol, string(domain.MarketUS), start, end)
	if err != nil {
		return nil, fmt.Errorf("reading bars for %s: %w", symbol, err)
	}

	comparisons := make([]Comparison, 0, len(strategies))
	for name, p := range strategies {
		res, err := Simulate(bars, initialCapital, p)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
		res.Symbol = symbol
		res.Start = start
		res.End = end
		comparisons = append(comparisons, Comparison{Name: name, Result: res})
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].Name < comparisons[j].Name
	})
	return comparisons, nil
}
