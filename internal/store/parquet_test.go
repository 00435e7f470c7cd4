package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stratlab/internal/domain"
)

func mkBar(symbol string, ts time.Time, close float64) domain.Bar {
	return domain.Bar{
		Symbol:     symbol,
		Timestamp:  ts,
		Open:       close - 1,
		High:       close + 1,
		Low:        close - 2,
		Close:      close,
		Volume:     1000,
		TradeCount: 10,
		VWAP:       close,
	}
}

func TestBarPath(t *testing.T) {
	s := NewParquetStore("/data")
	ts := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	got := s.barPath("aapl", "us", ts)
	want := filepath.Join("/data", "us", "daily", "AAPL", "2024.parquet")
	if got != want {
		t.Errorf("barPath = %q, want %q", got, want)
	}
}

func TestParquetWriteReadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())

	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	in := []domain.Bar{
		mkBar("AAPL", d2, 172),
		mkBar("AAPL", d1, 170),
		mkBar("AAPL", d3, 175),
	}
	if err := s.WriteBars(ctx, in); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	out, err := s.ReadBars(ctx, "AAPL", "us", d1, d3)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d bars, want 3", len(out))
	}
	// Chronological regardless of write order.
	for i, want := range []time.Time{d1, d2, d3} {
		if !out[i].Timestamp.Equal(want) {
			t.Errorf("bar[%d].Timestamp = %v, want %v", i, out[i].Timestamp, want)
		}
	}
	if out[0].Close != 170 || out[2].Close != 175 {
		t.Errorf("closes = %v, %v; want 170, 175", out[0].Close, out[2].Close)
	}
}

func TestParquetReadRangeFilter(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())

	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	if err := s.WriteBars(ctx, []domain.Bar{
		mkBar("MSFT", d1, 400),
		mkBar("MSFT", d2, 405),
		mkBar("MSFT", d3, 410),
	}); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	out, err := s.ReadBars(ctx, "MSFT", "us", d2, d2)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(out) != 1 || !out[0].Timestamp.Equal(d2) {
		t.Errorf("got %+v, want exactly the bar at %v", out, d2)
	}
}

func TestParquetUpsertReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := s.WriteBars(ctx, []domain.Bar{mkBar("AAPL", d, 170)}); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}
	// Rewriting the same (symbol, timestamp) replaces rather than duplicates.
	if err := s.WriteBars(ctx, []domain.Bar{mkBar("AAPL", d, 171)}); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	out, err := s.ReadBars(ctx, "AAPL", "us", d, d)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d bars, want 1", len(out))
	}
	if out[0].Close != 171 {
		t.Errorf("close = %v, want the rewritten 171", out[0].Close)
	}
}

func TestParquetSpansYearBoundary(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())

	dec := time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	if err := s.WriteBars(ctx, []domain.Bar{
		mkBar("AAPL", dec, 168),
		mkBar("AAPL", jan, 169),
	}); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	out, err := s.ReadBars(ctx, "AAPL", "us", dec, jan)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d bars across the year boundary, want 2", len(out))
	}
}

func TestParquetUnknownSymbol(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())

	out, err := s.ReadBars(ctx, "NOPE", "us",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d bars for an unknown symbol, want 0", len(out))
	}
}

func TestParquetListSymbols(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := s.WriteBars(ctx, []domain.Bar{
		mkBar("MSFT", d, 400),
		mkBar("AAPL", d, 170),
	}); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	symbols, err := s.ListSymbols(ctx, "us")
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("symbols = %v, want [AAPL MSFT]", symbols)
	}

	// Empty market directory is not an error.
	symbols, err = s.ListSymbols(ctx, "eu")
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("symbols for empty market = %v, want none", symbols)
	}
}
