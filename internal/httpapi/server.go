// Package httpapi serves the backtest JSON API: running new backtests and
// browsing stored results.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stratlab/internal/backtest"
	"stratlab/internal/store"
)

// Server serves the backtest HTTP API.
type Server struct {
	backtester *backtest.Backtester
	results    store.ResultStore
	bars       store.BarStore
	log        *slog.Logger
}

// NewServer creates a Server wired with the given backtester and stores.
func NewServer(bt *backtest.Backtester, results store.ResultStore, bars store.BarStore, log *slog.Logger) *Server {
	return &Server{
		backtester: bt,
		results:    results,
		bars:       bars,
		log:        log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/backtest", s.handleBacktest)
	mux.HandleFunc("GET /api/results", s.handleListResults)
	mux.HandleFunc("GET /api/results/{id}", s.handleGetResult)
	mux.HandleFunc("GET /api/symbols", s.handleSymbols)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Symbol == "" {
		s.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if req.End != "" {
		var err error
		if end, err = time.Parse("2006-01-02", req.End); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid end date: "+err.Error())
			return
		}
	}
	start := end.AddDate(-2, 0, 0)
	if req.Start != "" {
		var err error
		if start, err = time.Parse("2006-01-02", req.Start); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid start date: "+err.Error())
			return
		}
	}

	capital := req.InitialCapital
	if capital <= 0 {
		capital = 10000
	}
	params := backtest.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}

	res, err := s.backtester.Run(r.Context(), req.Symbol, start, end, capital, params)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := res.Record()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "serializing result: "+err.Error())
		return
	}
	id, err := s.results.SaveResult(r.Context(), rec)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "saving result: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, BacktestResponse{ID: id, Result: res})
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := s.results.ListResults(r.Context(), symbol, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]ResultSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, ResultSummary{
			ID:           rec.ID,
			Symbol:       rec.Symbol,
			CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
			TotalReturn:  rec.TotalReturn,
			SharpeRatio:  rec.SharpeRatio,
			MaxDrawdown:  rec.MaxDrawdown,
			WinRate:      rec.WinRate,
			TotalTrades:  rec.TotalTrades,
			ExcessReturn: rec.ExcessReturn,
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}

	rec, err := s.results.GetResult(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.bars.ListSymbols(r.Context(), "us")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	s.writeJSON(w, http.StatusOK, symbols)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
