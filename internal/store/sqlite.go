package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ ResultStore = (*SQLiteStore)(nil)

// SQLiteStore implements ResultStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const resultsSchema = `
CREATE TABLE IF NOT EXISTS backtest_results (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol            TEXT NOT NULL,
	start_ts          INTEGER NOT NULL,
	end_ts            INTEGER NOT NULL,
	created_at        INTEGER NOT NULL,
	initial_capital   REAL NOT NULL,
	final_capital     REAL NOT NULL,
	total_return      REAL NOT NULL,
	annualized_return REAL NOT NULL,
	volatility        REAL NOT NULL,
	sharpe_ratio      REAL NOT NULL,
	max_drawdown      REAL NOT NULL,
	win_rate          REAL NOT NULL,
	profit_factor     REAL NOT NULL,
	buy_hold_return   REAL NOT NULL,
	excess_return     REAL NOT NULL,
	total_trades      INTEGER NOT NULL,
	params_json       TEXT NOT NULL,
	trades_json       TEXT NOT NULL,
	equity_json       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_symbol ON backtest_results(symbol, created_at);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the results schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(resultsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating results schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveResult inserts a new result record and returns its assigned ID.
func (s *SQLiteStore) SaveResult(ctx context.Context, rec *ResultRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO backtest_results (
			symbol, start_ts, end_ts, created_at,
			initial_capital, final_capital, total_return, annualized_return,
			volatility, sharpe_ratio, max_drawdown, win_rate, profit_factor,
			buy_hold_return, excess_return, total_trades,
			params_json, trades_json, equity_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Symbol, rec.Start.UnixMilli(), rec.End.UnixMilli(), createdAt.UnixMilli(),
		rec.InitialCapital, rec.FinalCapital, rec.TotalReturn, rec.AnnualizedReturn,
		rec.Volatility, rec.SharpeRatio, rec.MaxDrawdown, rec.WinRate, rec.ProfitFactor,
		rec.BuyHoldReturn, rec.ExcessReturn, rec.TotalTrades,
		rec.ParamsJSON, rec.TradesJSON, rec.EquityJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting result for %s: %w", rec.Symbol, err)
	}
	return res.LastInsertId()
}

// GetResult retrieves a single result by its ID.
func (s *SQLiteStore) GetResult(ctx context.Context, id int64) (*ResultRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, symbol, start_ts, end_ts, created_at,
			initial_capital, final_capital, total_return, annualized_return,
			volatility, sharpe_ratio, max_drawdown, win_rate, profit_factor,
			buy_hold_return, excess_return, total_trades,
			params_json, trades_json, equity_json
		FROM backtest_results WHERE id = ?`, id)

	rec, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result %d not found", id)
	}
	return rec, err
}

// ListResults returns the most recent results, newest first, up to limit.
// An empty symbol matches all symbols.
func (s *SQLiteStore) ListResults(ctx context.Context, symbol string, limit int) ([]ResultRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, symbol, start_ts, end_ts, created_at,
			initial_capital, final_capital, total_return, annualized_return,
			volatility, sharpe_ratio, max_drawdown, win_rate, profit_factor,
			buy_hold_return, excess_return, total_trades,
			params_json, trades_json, equity_json
		FROM backtest_results`
	args := []any{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (*ResultRecord, error) {
	var rec ResultRecord
	var startMs, endMs, createdMs int64
	err := sc.Scan(
		&rec.ID, &rec.Symbol, &startMs, &endMs, &createdMs,
		&rec.InitialCapital, &rec.FinalCapital, &rec.TotalReturn, &rec.AnnualizedReturn,
		&rec.Volatility, &rec.SharpeRatio, &rec.MaxDrawdown, &rec.WinRate, &rec.ProfitFactor,
		&rec.BuyHoldReturn, &rec.ExcessReturn, &rec.TotalTrades,
		&rec.ParamsJSON, &rec.TradesJSON, &rec.EquityJSON,
	)
	if err != nil {
		return nil, err
	}
	rec.Start = time.UnixMilli(startMs).UTC()
	rec.End = time.UnixMilli(endMs).UTC()
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()
	return &rec, nil
}
