// Package utils provides small shared helpers: ticker normalization and
// numeric rounding for display values.
package utils

import "strings"

// NormalizeTicker canonicalizes a user-supplied ticker symbol: trimmed,
// upper-cased. "  aapl " → "AAPL".
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// NormalizeTickers normalizes a list of tickers, dropping empties.
func NormalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if n := NormalizeTicker(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
