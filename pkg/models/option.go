package models

import "time"

// ChainSnapshot is one retrieval of the option chain for a ticker on a
// single expiration date, as returned by a market-data provider.
type ChainSnapshot struct {
	Ticker      string           `json:"ticker"`
	SpotPrice   float64          `json:"spotPrice"`
	Expiration  string           `json:"expiration"`  // YYYY-MM-DD
	Expirations []string         `json:"expirations"` // all available expiration dates, nearest first
	Calls       []OptionContract `json:"calls"`
	Puts        []OptionContract `json:"puts"`
	FetchedAt   time.Time        `json:"fetchedAt"`
}

// OptionContract is a single call or put contract at a strike. Values come
// straight from the provider and are never mutated; derived display fields
// live on options.EnrichedOption instead.
//
// ImpliedVolatility is a fraction (0.23 = 23%). It and Delta are pointers
// because providers omit them for illiquid strikes.
type OptionContract struct {
	ContractSymbol    string   `json:"contractSymbol"`
	Strike            float64  `json:"strike"`
	LastPrice         float64  `json:"lastPrice"`
	Bid               float64  `json:"bid"`
	Ask               float64  `json:"ask"`
	Volume            int64    `json:"volume"`
	OpenInterest      int64    `json:"openInterest"`
	ImpliedVolatility *float64 `json:"impliedVolatility,omitempty"`
	Delta             *float64 `json:"delta,omitempty"`
	InTheMoney        bool     `json:"inTheMoney"`
	OutOfTheMoney     bool     `json:"outOfTheMoney"`
}
