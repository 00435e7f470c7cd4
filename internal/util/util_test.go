package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRateLimiterNew(t *testing.T) {
	rl := NewRateLimiter(60)
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
}

func TestIsTradingDay(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2024-06-14", true},  // regular Friday
		{"2024-06-15", false}, // Saturday
		{"2024-06-16", false}, // Sunday
		{"2024-07-04", false}, // Independence Day
		{"2024-12-25", false}, // Christmas
		{"2024-01-15", false}, // MLK Day (3rd Monday of January)
		{"2024-09-02", false}, // Labor Day (1st Monday of September)
		{"2024-05-27", false}, // Memorial Day (last Monday of May)
		{"2024-11-28", false}, // Thanksgiving (4th Thursday of November)
		{"2024-11-27", true},  // Wednesday before Thanksgiving
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatalf("parsing %q: %v", c.date, err)
		}
		if got := IsTradingDay(d); got != c.want {
			t.Errorf("IsTradingDay(%s) = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestPreviousTradingDay(t *testing.T) {
	// Monday 2024-06-17 → previous trading day is Friday 2024-06-14.
	mon := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	got := PreviousTradingDay(mon)
	want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("PreviousTradingDay(%s) = %s, want %s", mon, got, want)
	}
}

func TestTradingDays(t *testing.T) {
	// The week of 2024-07-01 to 2024-07-05 contains July 4.
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	if got := TradingDays(start, end); got != 4 {
		t.Errorf("TradingDays = %d, want 4", got)
	}
}
