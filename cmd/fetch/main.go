package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stratlab/internal/config"
	"stratlab/internal/marketdata"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated ticker symbols to fetch (required)")
	startFlag := flag.String("start", "", "start date YYYY-MM-DD (default: two years before end)")
	endFlag := flag.String("end", "", "end date YYYY-MM-DD (default: previous trading day)")
	flag.Parse()

	if *symbolsFlag == "" {
		flag.Usage()
		os.Exit(2)
	}
	var symbols []string
	for _, s := range strings.Split(*symbolsFlag, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, strings.ToUpper(s))
		}
	}

	cfgPath := "config/stratlab.yaml"
	if p := os.Getenv("STRATLAB_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	end := util.PreviousTradingDay(time.Now().UTC())
	if *endFlag != "" {
		if end, err = time.Parse("2006-01-02", *endFlag); err != nil {
			log.Fatalf("invalid -end date: %v", err)
		}
	}
	start := end.AddDate(-2, 0, 0)
	if *startFlag != "" {
		if start, err = time.Parse("2006-01-02", *startFlag); err != nil {
			log.Fatalf("invalid -start date: %v", err)
		}
	}

	fetcher := marketdata.NewDailyBarFetcher(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		store.NewParquetStore(cfg.Storage.DataDir),
		cfg.Fetch.BatchSize,
		cfg.Fetch.RateLimitPerMin,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("fetching daily bars",
		"symbols", len(symbols),
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)
	if err := fetcher.Fetch(ctx, symbols, start, end); err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
}
