// Package marketdata fetches historical daily bars from the Alpaca
// market-data API into a bar store. The backtest engine never fetches data
// itself; this package is the collaborator that supplies its input series.
package marketdata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	alpacamd "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stratlab/internal/domain"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

// DailyBarFetcher fetches daily OHLCV bars for explicit symbols via the
// Alpaca market-data API and writes them to a bar store.
type DailyBarFetcher struct {
	client    *alpacamd.Client
	store     store.BarStore
	batchSize int
	limiter   *util.RateLimiter
	log       *slog.Logger
}

// NewDailyBarFetcher creates a DailyBarFetcher configured with the given
// Alpaca credentials, target store, and batching/rate-limit parameters.
func NewDailyBarFetcher(apiKey, apiSecret, dataURL string, s store.BarStore, batchSize, rateLimitPerMin int) *DailyBarFetcher {
	opts := alpacamd.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	if rateLimitPerMin <= 0 {
		rateLimitPerMin = 200
	}

	return &DailyBarFetcher{
		client:    alpacamd.NewClient(opts),
		store:     s,
		batchSize: batchSize,
		limiter:   util.NewRateLimiter(rateLimitPerMin),
		log:       slog.Default().With("component", "marketdata"),
	}
}

// Fetch downloads daily bars for the given symbols over [start, end] and
// persists them. Symbols are fetched in batches; transient API failures are
// retried with backoff. Symbols with no history are logged and skipped, not
// treated as errors.
func (f *DailyBarFetcher) Fetch(ctx context.Context, symbols []string, start, end time.Time) error {
	if len(symbols) == 0 {
		return nil
	}

	for i := 0; i < len(symbols); i += f.batchSize {
		batch := symbols[i:min(i+f.batchSize, len(symbols))]

		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		bars, err := f.fetchMultiBars(ctx, batch, start, end)
		if err != nil {
			return fmt.Errorf("fetching batch starting at %s: %w", batch[0], err)
		}

		if err := f.store.WriteBars(ctx, bars); err != nil {
			return fmt.Errorf("writing bars: %w", err)
		}

		f.log.Info("batch fetched",
			"symbols", len(batch),
			"bars", len(bars),
			"start", start.Format("2006-01-02"),
			"end", end.Format("2006-01-02"),
		)
	}
	return nil
}

// fetchMultiBars fetches daily bars for multiple symbols in a single API
// call, retrying transient failures.
func (f *DailyBarFetcher) fetchMultiBars(ctx context.Context, symbols []string, start, end time.Time) ([]domain.Bar, error) {
	var multiBars map[string][]alpacamd.Bar

	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		multiBars, err = f.client.GetMultiBars(symbols, alpacamd.GetBarsRequest{
			TimeFrame: alpacamd.OneDay,
			Start:     start,
			End:       end,
			Feed:      "sip",
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	var bars []domain.Bar
	for symbol, alpacaBars := range multiBars {
		for _, ab := range alpacaBars {
			bars = append(bars, domain.Bar{
				Symbol:     strings.ToUpper(symbol),
				Timestamp:  ab.Timestamp,
				Open:       ab.Open,
				High:       ab.High,
				Low:        ab.Low,
				Close:      ab.Close,
				Volume:     int64(ab.Volume),
				TradeCount: int64(ab.TradeCount),
				VWAP:       ab.VWAP,
			})
		}
	}
	return bars, nil
}
