// Package provider defines the market-data provider abstraction: a MarketData
// interface implemented by concrete providers, typed errors for the two
// failure classes callers distinguish, and a registry that resolves providers
// by name.
package provider

import (
	"context"
	"fmt"

	"github.com/seenimoa/optionscope/pkg/models"
)

// MarketData is the interface all market-data providers implement. Every call
// is a synchronous lookup that may fail or return empty; callers treat the
// provider as opaque.
type MarketData interface {
	// Name returns the provider's registry name, e.g. "yfinance".
	Name() string

	// Expirations returns the available expiration dates for a ticker,
	// nearest first. An empty list is reported as ErrNoExpirations.
	Expirations(ctx context.Context, ticker string) ([]string, error)

	// CurrentPrice returns the underlying's current spot price.
	CurrentPrice(ctx context.Context, ticker string) (float64, error)

	// OptionChain returns the full chain snapshot for a ticker and
	// expiration date (YYYY-MM-DD). An empty expiration selects the
	// nearest available date.
	OptionChain(ctx context.Context, ticker, expiration string) (*models.ChainSnapshot, error)

	// HistoricalBars returns daily OHLC bars for the given range
	// (e.g. "1mo") and interval (e.g. "1d"), oldest first.
	HistoricalBars(ctx context.Context, ticker, barRange, interval string) ([]models.Candle, error)

	// Ping verifies the provider is reachable.
	Ping(ctx context.Context) error
}

// ErrNoExpirations is returned when a ticker has no listed option
// expirations — either an unknown symbol or an underlying without options.
type ErrNoExpirations struct {
	Ticker string
}

func (e *ErrNoExpirations) Error() string {
	return fmt.Sprintf("no option expirations found for %q", e.Ticker)
}

// ErrUpstream wraps any other provider failure: network, rate limit,
// malformed payload.
type ErrUpstream struct {
	Provider string
	Err      error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("provider %q: %v", e.Provider, e.Err)
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrProviderNotFound is returned when a requested provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not found", e.Name)
}
