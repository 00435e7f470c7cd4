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

// builtinStrategies returns the named parameter sets compared side by side,
// anchored on the configured default.
func builtinStrategies(base backtest.Params) map[string]backtest.Params {
	conservative := base
	conservative.RSIOversold = 25
	conservative.RSIOverbought = 75
	conservative.StopLoss = 0.03
	conservative.TakeProfit = 0.06

	aggressive := base
	aggressive.RSIOversold = 35
	aggressive.RSIOverbought = 65
	aggressive.MAShort = 10
	aggressive.MALong = 30
	aggressive.StopLoss = 0.08
	aggressive.TakeProfit = 0.15

	return map[string]backtest.Params{
		"default":      base,
		"conservative": conservative,
		"aggressive":   aggressive,
	}
}

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to compare strategies on (required)")
	startFlag := flag.String("start", "", "start date YYYY-MM-DD (default: two years before end)")
	endFlag := flag.String("end", "", "end date YYYY-MM-DD (default: previous trading day)")
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

	util.SetDefault(util.NewLogger(cfg.Logging.Level))

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

	bt := backtest.NewBacktester(store.NewParquetStore(cfg.Storage.DataDir))

	comparisons, err := bt.Compare(
		context.Background(),
		*symbol,
		start, end,
		cfg.Backtest.InitialCapital,
		builtinStrategies(cfg.Backtest.Strategy),
	)
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	fmt.Printf("Strategy comparison for %s (%s to %s)\n\n",
		*symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Print(report.RenderComparison(comparisons))
}
