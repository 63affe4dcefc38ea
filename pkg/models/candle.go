package models

// Candle is one daily OHLC bar in the shape the charting front end consumes.
type Candle struct {
	Time  string  `json:"time"` // YYYY-MM-DD
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}
