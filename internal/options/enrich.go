package options

import (
	"github.com/seenimoa/optionscope/pkg/models"
	"github.com/seenimoa/optionscope/pkg/utils"
)

// Moneyness classifies a strike relative to the underlying's current price.
type Moneyness string

const (
	MoneynessITM Moneyness = "ITM"
	MoneynessOTM Moneyness = "OTM"
	MoneynessATM Moneyness = "ATM"
)

// EnrichedOption is the display form of a contract: prices rounded to 2
// decimal places, implied volatility rescaled to percent, delta rounded to
// 3 places, plus the derived spread and moneyness fields.
type EnrichedOption struct {
	ContractSymbol      string    `json:"contractSymbol"`
	Strike              float64   `json:"strike"`
	LastPrice           float64   `json:"lastPrice"`
	Bid                 float64   `json:"bid"`
	Ask                 float64   `json:"ask"`
	Volume              int64     `json:"volume"`
	OpenInterest        int64     `json:"openInterest"`
	ImpliedVolatility   *float64  `json:"impliedVolatility,omitempty"` // percent
	Delta               *float64  `json:"delta,omitempty"`
	BidAskSpread        float64   `json:"bidAskSpread"`
	BidAskSpreadPercent float64   `json:"bidAskSpreadPercent"`
	Moneyness           Moneyness `json:"moneyness"`
}

// Enrich computes the derived display record for one contract. It never
// filters and never mutates the input; a nil implied volatility or delta
// stays nil. Pure, so re-running on the same contract yields identical
// output.
func Enrich(c models.OptionContract) EnrichedOption {
	e := EnrichedOption{
		ContractSymbol: c.ContractSymbol,
		Strike:         utils.Round2(c.Strike),
		LastPrice:      utils.Round2(c.LastPrice),
		Bid:            utils.Round2(c.Bid),
		Ask:            utils.Round2(c.Ask),
		Volume:         c.Volume,
		OpenInterest:   c.OpenInterest,
		BidAskSpread:   utils.Round2(c.Ask - c.Bid),
	}

	if c.Ask > 0 {
		e.BidAskSpreadPercent = utils.Round2((c.Ask - c.Bid) / c.Ask * 100)
	}

	if c.ImpliedVolatility != nil {
		iv := utils.Round2(*c.ImpliedVolatility * 100)
		e.ImpliedVolatility = &iv
	}
	if c.Delta != nil {
		d := utils.Round3(*c.Delta)
		e.Delta = &d
	}

	// A contract with neither flag set (at-the-money, or the provider
	// omitted them) classifies as ATM.
	switch {
	case c.InTheMoney:
		e.Moneyness = MoneynessITM
	case c.OutOfTheMoney:
		e.Moneyness = MoneynessOTM
	default:
		e.Moneyness = MoneynessATM
	}

	return e
}
