// Package options implements the options-filtering and ranking engine:
// liquidity/spread predicates, display-field enrichment, per-chain ranking
// with a bounded result set, and single-ticker and multi-ticker (screener)
// orchestration on top of a market-data provider.
package options

import "github.com/seenimoa/optionscope/pkg/models"

// OptionType selects which side of the chain the screener scans.
type OptionType string

const (
	OptionTypeCalls OptionType = "calls"
	OptionTypePuts  OptionType = "puts"
	OptionTypeBoth  OptionType = "both"
)

// FilterConfig holds the user-configurable liquidity and spread filters.
// A zero MinVolume/MinOpenInterest and a nil MaxBidAskSpreadPct mean no
// filtering on that dimension.
type FilterConfig struct {
	MinVolume          int64      `json:"minVolume"`
	MinOpenInterest    int64      `json:"minOpenInterest"`
	MaxBidAskSpreadPct *float64   `json:"maxBidAskSpread,omitempty"`
	OptionType         OptionType `json:"optionType,omitempty"` // screener only
	IncludeGreeks      bool       `json:"includeGreeks"`
}

// DefaultFilterConfig returns the no-op filter: nothing excluded, greeks
// included.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{IncludeGreeks: true}
}

// Include decides whether a contract passes every configured filter.
// Predicates combine with AND; unset thresholds never exclude. Pure and
// deterministic.
func Include(c models.OptionContract, cfg FilterConfig) bool {
	if cfg.MinVolume > 0 && c.Volume < cfg.MinVolume {
		return false
	}
	if cfg.MinOpenInterest > 0 && c.OpenInterest < cfg.MinOpenInterest {
		return false
	}
	if cfg.MaxBidAskSpreadPct != nil && spreadPercent(c.Bid, c.Ask) > *cfg.MaxBidAskSpreadPct {
		return false
	}
	return true
}

// spreadPercent is (ask-bid)/ask*100, defined as 0 when ask is 0 so
// zero-quoted contracts never divide by zero (they pass the spread filter
// and surface with a 0% spread).
func spreadPercent(bid, ask float64) float64 {
	if ask == 0 {
		return 0
	}
	return (ask - bid) / ask * 100
}
