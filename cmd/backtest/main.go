package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"stratlab/internal/backtest"
	"stratlab/internal/config"
	"stratlab/internal/report"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to backtest (required)")
	startFlag := flag.String("start", "", "start date YYYY-MM-DD (default: two years before end)")
	endFlag := flag.String("end", "", "end date YYYY-MM-DD (default: previous trading day)")
	capital := flag.Float64("capital", 0, "initial capital (default: from config)")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
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

	initialCapital := cfg.Backtest.InitialCapital
	if *capital > 0 {
		initialCapital = *capital
	}

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	resultStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening result store: %v", err)
	}
	defer resultStore.Close()

	bt := backtest.NewBacktester(barStore)

	ctx := context.Background()
	res, err := bt.Run(ctx, *symbol, start, end, initialCapital, cfg.Backtest.Strategy)
	if err != nil {
		log.Fatalf("backtest failed: %v", err)
	}

	fmt.Print(report.Render(res))

	rec, err := res.Record()
	if err != nil {
		log.Fatalf("serializing result: %v", err)
	}
	id, err := resultStore.SaveResult(ctx, rec)
	if err != nil {
		log.Fatalf("saving result: %v", err)
	}
	logger.Info("result saved", "id", id, "symbol", *symbol)
}
