package options

import (
	"context"
	"log"

	"github.com/seenimoa/optionscope/internal/provider"
	"github.com/seenimoa/optionscope/pkg/models"
	"github.com/seenimoa/optionscope/pkg/utils"
)

// Engine orchestrates chain queries and screener batches on top of a
// market-data provider. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	data provider.MarketData
}

// NewEngine creates an engine backed by the given provider.
func NewEngine(data provider.MarketData) *Engine {
	return &Engine{data: data}
}

// ChainResult is the response for a single-ticker chain query.
type ChainResult struct {
	Ticker               string           `json:"ticker"`
	CurrentPrice         float64          `json:"currentPrice"`
	Expiration           string           `json:"expiration"`
	AvailableExpirations []string         `json:"availableExpirations"`
	Calls                []EnrichedOption `json:"calls"`
	Puts                 []EnrichedOption `json:"puts"`
	Filters              FilterConfig     `json:"filters"`
}

// ScreenerRow is one contract surfaced by a screener scan.
type ScreenerRow struct {
	Ticker            string   `json:"ticker"`
	Type              string   `json:"type"` // "Call" or "Put"
	Expiration        string   `json:"expiration"`
	Strike            float64  `json:"strike"`
	LastPrice         float64  `json:"lastPrice"`
	Bid               float64  `json:"bid"`
	Ask               float64  `json:"ask"`
	Volume            int64    `json:"volume"`
	OpenInterest      int64    `json:"openInterest"`
	ImpliedVolatility *float64 `json:"impliedVolatility,omitempty"` // percent
	CurrentPrice      float64  `json:"currentPrice"`
}

// MaxScreenerTickers bounds one screener batch; extra tickers are dropped.
const MaxScreenerTickers = 10

// Query fetches, filters, ranks, and enriches the chain for one ticker.
//
// The expiration override is honored only when it is one of the ticker's
// listed dates; otherwise the nearest expiration is used. A ticker with no
// listed expirations surfaces the provider's ErrNoExpirations; any other
// provider failure passes through unchanged.
func (e *Engine) Query(ctx context.Context, ticker, expiration string, cfg FilterConfig) (*ChainResult, error) {
	ticker = utils.NormalizeTicker(ticker)

	snap, err := e.data.OptionChain(ctx, ticker, "")
	if err != nil {
		return nil, err
	}

	// Refetch only when the caller picked a different listed date.
	if expiration != "" && expiration != snap.Expiration && contains(snap.Expirations, expiration) {
		snap, err = e.data.OptionChain(ctx, ticker, expiration)
		if err != nil {
			return nil, err
		}
	}

	return &ChainResult{
		Ticker:               snap.Ticker,
		CurrentPrice:         utils.Round2(snap.SpotPrice),
		Expiration:           snap.Expiration,
		AvailableExpirations: snap.Expirations,
		Calls:                ProcessChain(snap.Calls, cfg),
		Puts:                 ProcessChain(snap.Puts, cfg),
		Filters:              cfg,
	}, nil
}

// Screen scans up to MaxScreenerTickers tickers at their nearest expiration
// and returns every contract that passes the filters, in ticker order and
// volume-descending within each ticker. Tickers that fail to fetch are
// logged and skipped; Screen itself never fails.
func (e *Engine) Screen(ctx context.Context, tickers []string, cfg FilterConfig) []ScreenerRow {
	tickers = utils.NormalizeTickers(tickers)
	if len(tickers) > MaxScreenerTickers {
		tickers = tickers[:MaxScreenerTickers]
	}

	rows := make([]ScreenerRow, 0)
	for _, ticker := range tickers {
		snap, err := e.data.OptionChain(ctx, ticker, "")
		if err != nil {
			log.Printf("screener: skipping %s: %v", ticker, err)
			continue
		}

		if cfg.OptionType == OptionTypeCalls || cfg.OptionType == OptionTypeBoth || cfg.OptionType == "" {
			rows = append(rows, screenSide(snap, snap.Calls, "Call", cfg)...)
		}
		if cfg.OptionType == OptionTypePuts || cfg.OptionType == OptionTypeBoth || cfg.OptionType == "" {
			rows = append(rows, screenSide(snap, snap.Puts, "Put", cfg)...)
		}
	}
	return rows
}

// screenSide filters and ranks one side of a snapshot into screener rows.
func screenSide(snap *models.ChainSnapshot, contracts []models.OptionContract, side string, cfg FilterConfig) []ScreenerRow {
	enriched := ProcessChain(contracts, cfg)
	rows := make([]ScreenerRow, 0, len(enriched))
	for _, c := range enriched {
		rows = append(rows, ScreenerRow{
			Ticker:            snap.Ticker,
			Type:              side,
			Expiration:        snap.Expiration,
			Strike:            c.Strike,
			LastPrice:         c.LastPrice,
			Bid:               c.Bid,
			Ask:               c.Ask,
			Volume:            c.Volume,
			OpenInterest:      c.OpenInterest,
			ImpliedVolatility: c.ImpliedVolatility,
			CurrentPrice:      utils.Round2(snap.SpotPrice),
		})
	}
	return rows
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
