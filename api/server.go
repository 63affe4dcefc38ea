// Package api provides the HTTP REST API server for optionscope.
//
// It exposes endpoints for option chain queries, expiration listings,
// historical price data, and the multi-ticker screener.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/optionscope/internal/config"
	"github.com/seenimoa/optionscope/internal/options"
	"github.com/seenimoa/optionscope/internal/provider"
	"github.com/seenimoa/optionscope/pkg/models"
	"github.com/seenimoa/optionscope/pkg/utils"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	engine   *options.Engine
	registry *provider.Registry
}

// NewServer creates a configured API server with all routes and middleware.
// The market-data provider is resolved from the registry by the configured
// provider name.
func NewServer(cfg *config.Config, registry *provider.Registry) (*Server, error) {
	data, err := registry.Get(cfg.Provider.Name)
	if err != nil {
		return nil, fmt.Errorf("provider setup failed: %w", err)
	}

	srv := &Server{
		cfg:      cfg,
		engine:   options.NewEngine(data),
		registry: registry,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/options", s.handleOptions)
		r.Get("/expirations/{ticker}", s.handleExpirations)
		r.Get("/historical-data/{ticker}", s.handleHistoricalData)
		r.Post("/screener", s.handleScreener)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// errorResponse is the error body every endpoint emits.
type errorResponse struct {
	Error string `json:"error"`
}

// OptionsRequest is the body for POST /api/options. Absent filter fields
// mean no filtering; an absent ticker falls back to the configured default.
type OptionsRequest struct {
	Ticker          string   `json:"ticker,omitempty"`
	Expiration      string   `json:"expiration,omitempty"` // YYYY-MM-DD
	MinVolume       *int64   `json:"minVolume,omitempty"`
	MinOpenInterest *int64   `json:"minOpenInterest,omitempty"`
	MaxBidAskSpread *float64 `json:"maxBidAskSpread,omitempty"`
	IncludeGreeks   *bool    `json:"includeGreeks,omitempty"`
}

// ScreenerRequest is the body for POST /api/screener. Absent filter fields
// take the screener defaults, not "no filtering".
type ScreenerRequest struct {
	Tickers         []string `json:"tickers"`
	MinVolume       *int64   `json:"minVolume,omitempty"`
	MinOpenInterest *int64   `json:"minOpenInterest,omitempty"`
	MaxBidAskSpread *float64 `json:"maxBidAskSpread,omitempty"`
	OptionType      string   `json:"optionType,omitempty"` // "calls", "puts", "both"
}

// ScreenerResponse wraps the flat screener result list.
type ScreenerResponse struct {
	Results []options.ScreenerRow `json:"results"`
}

// ExpirationsResponse lists a ticker's available expiration dates.
type ExpirationsResponse struct {
	Ticker      string   `json:"ticker"`
	Expirations []string `json:"expirations"`
}

// HistoricalDataResponse carries daily OHLC bars, oldest first.
type HistoricalDataResponse struct {
	Ticker string          `json:"ticker"`
	Data   []models.Candle `json:"data"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	providers := map[string]string{}
	status := "ok"
	for name, err := range s.registry.PingAll(ctx) {
		if err != nil {
			providers[name] = err.Error()
			status = "degraded"
		} else {
			providers[name] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"providers": providers,
		"time":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req OptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticker := req.Ticker
	if ticker == "" {
		ticker = s.cfg.Options.DefaultTicker
	}

	cfg := options.DefaultFilterConfig()
	if req.MinVolume != nil {
		cfg.MinVolume = *req.MinVolume
	}
	if req.MinOpenInterest != nil {
		cfg.MinOpenInterest = *req.MinOpenInterest
	}
	cfg.MaxBidAskSpreadPct = req.MaxBidAskSpread
	if req.IncludeGreeks != nil {
		cfg.IncludeGreeks = *req.IncludeGreeks
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := s.engine.Query(ctx, ticker, req.Expiration, cfg)
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExpirations(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	ticker = utils.NormalizeTicker(ticker)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	data, err := s.registry.Get(s.cfg.Provider.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	expirations, err := data.Expirations(ctx, ticker)
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExpirationsResponse{Ticker: ticker, Expirations: expirations})
}

func (s *Server) handleHistoricalData(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	ticker = utils.NormalizeTicker(ticker)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	data, err := s.registry.Get(s.cfg.Provider.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	candles, err := data.HistoricalBars(ctx, ticker, "3mo", "1d")
	if err != nil {
		writeProviderError(w, err)
		return
	}

	// Trailing window only; the chart shows recent price action.
	limit := s.cfg.Options.HistoricalBars
	if limit <= 0 {
		limit = 30
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	writeJSON(w, http.StatusOK, HistoricalDataResponse{Ticker: ticker, Data: candles})
}

func (s *Server) handleScreener(w http.ResponseWriter, r *http.Request) {
	var req ScreenerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tickers) == 0 {
		writeError(w, http.StatusBadRequest, "tickers is required")
		return
	}

	cfg := options.FilterConfig{
		MinVolume:       s.cfg.Options.ScreenerMinVolume,
		MinOpenInterest: s.cfg.Options.ScreenerMinOpenInt,
		OptionType:      options.OptionType(s.cfg.Options.ScreenerOptionType),
	}
	maxSpread := s.cfg.Options.ScreenerMaxSpreadPct
	cfg.MaxBidAskSpreadPct = &maxSpread

	if req.MinVolume != nil {
		cfg.MinVolume = *req.MinVolume
	}
	if req.MinOpenInterest != nil {
		cfg.MinOpenInterest = *req.MinOpenInterest
	}
	if req.MaxBidAskSpread != nil {
		cfg.MaxBidAskSpreadPct = req.MaxBidAskSpread
	}
	if req.OptionType != "" {
		cfg.OptionType = options.OptionType(req.OptionType)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	rows := s.engine.Screen(ctx, req.Tickers, cfg)
	writeJSON(w, http.StatusOK, ScreenerResponse{Results: rows})
}

// ============================================================
// Helpers
// ============================================================

// writeProviderError maps provider failures onto the wire contract: a ticker
// without listed options is a 404, everything else is a 502-class upstream
// failure reported as 500.
func writeProviderError(w http.ResponseWriter, err error) {
	var noExp *provider.ErrNoExpirations
	if errors.As(err, &noExp) {
		writeError(w, http.StatusNotFound, noExp.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
