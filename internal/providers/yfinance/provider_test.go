package yfinance

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	p := New(0, 0)
	if p.Name() != "yfinance" {
		t.Errorf("Name: got %q", p.Name())
	}
	if p.chainTTL != 5*time.Minute {
		t.Errorf("chainTTL default: got %v", p.chainTTL)
	}
}

func TestToContract(t *testing.T) {
	iv := 0.2345
	itm := true
	c := yfContract{
		ContractSymbol:    "AAPL240119C00150000",
		Strike:            150,
		LastPrice:         12.34,
		Bid:               12.1,
		Ask:               12.5,
		Volume:            421,
		OpenInterest:      1890,
		ImpliedVolatility: &iv,
		InTheMoney:        &itm,
	}

	got := toContract(c)
	if got.ContractSymbol != "AAPL240119C00150000" {
		t.Errorf("ContractSymbol: got %q", got.ContractSymbol)
	}
	if got.Strike != 150 || got.Bid != 12.1 || got.Ask != 12.5 {
		t.Errorf("prices: %+v", got)
	}
	if got.ImpliedVolatility == nil || *got.ImpliedVolatility != 0.2345 {
		t.Errorf("ImpliedVolatility: got %v", got.ImpliedVolatility)
	}
	if !got.InTheMoney || got.OutOfTheMoney {
		t.Errorf("moneyness flags: ITM=%v OTM=%v", got.InTheMoney, got.OutOfTheMoney)
	}
}

func TestToContract_OTM(t *testing.T) {
	itm := false
	got := toContract(yfContract{Strike: 200, InTheMoney: &itm})
	if got.InTheMoney || !got.OutOfTheMoney {
		t.Errorf("moneyness flags: ITM=%v OTM=%v", got.InTheMoney, got.OutOfTheMoney)
	}
}

func TestToContract_MissingFields(t *testing.T) {
	// Yahoo omits impliedVolatility and inTheMoney for illiquid strikes;
	// both flags stay false and IV stays nil.
	got := toContract(yfContract{Strike: 100})
	if got.ImpliedVolatility != nil {
		t.Errorf("ImpliedVolatility: got %v, want nil", got.ImpliedVolatility)
	}
	if got.InTheMoney || got.OutOfTheMoney {
		t.Error("expected both moneyness flags false when source omits inTheMoney")
	}
}

func TestDecodeOptionsResponse(t *testing.T) {
	payload := `{
		"optionChain": {
			"result": [{
				"underlyingSymbol": "AAPL",
				"expirationDates": [1705622400, 1706227200],
				"quote": {"symbol": "AAPL", "regularMarketPrice": 185.92},
				"options": [{
					"expirationDate": 1705622400,
					"calls": [{
						"contractSymbol": "AAPL240119C00180000",
						"strike": 180.0,
						"lastPrice": 7.25,
						"bid": 7.2,
						"ask": 7.3,
						"volume": 1520,
						"openInterest": 9034,
						"impliedVolatility": 0.2211,
						"inTheMoney": true
					}],
					"puts": [{
						"contractSymbol": "AAPL240119P00180000",
						"strike": 180.0,
						"lastPrice": 1.05,
						"bid": 1.0,
						"ask": 1.1,
						"volume": 800,
						"openInterest": 4100,
						"inTheMoney": false
					}]
				}]
			}],
			"error": null
		}
	}`

	var resp yfOptionsResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(resp.OptionChain.Result) != 1 {
		t.Fatalf("result count: %d", len(resp.OptionChain.Result))
	}
	r := resp.OptionChain.Result[0]
	if r.Quote.RegularMarketPrice != 185.92 {
		t.Errorf("spot: got %v", r.Quote.RegularMarketPrice)
	}
	if len(r.ExpirationDates) != 2 {
		t.Fatalf("expirations: %d", len(r.ExpirationDates))
	}
	if len(r.Options) != 1 || len(r.Options[0].Calls) != 1 || len(r.Options[0].Puts) != 1 {
		t.Fatal("expected one expiry with one call and one put")
	}

	call := r.Options[0].Calls[0]
	if call.ImpliedVolatility == nil || *call.ImpliedVolatility != 0.2211 {
		t.Errorf("call IV: got %v", call.ImpliedVolatility)
	}
	put := r.Options[0].Puts[0]
	if put.ImpliedVolatility != nil {
		t.Errorf("put IV should be nil when omitted, got %v", *put.ImpliedVolatility)
	}
	if put.InTheMoney == nil || *put.InTheMoney {
		t.Error("put should decode inTheMoney=false")
	}
}

func TestDecodeOptionsResponse_NotFound(t *testing.T) {
	payload := `{"optionChain":{"result":[],"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

	var resp yfOptionsResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.OptionChain.Error == nil || resp.OptionChain.Error.Code != "Not Found" {
		t.Errorf("error: %+v", resp.OptionChain.Error)
	}
}

func TestParseCandles(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	result := yfChartResult{
		Timestamp: []int64{1704758400, 1704844800, 1704931200},
	}
	result.Indicators.Quote = []yfChartQuote{{
		Open:  []*float64{f(184.35), nil, f(186.06)},
		High:  []*float64{f(185.15), f(186.4), f(187.05)},
		Low:   []*float64{f(183.62), f(183.92), f(185.83)},
		Close: []*float64{f(184.25), f(185.59), f(186.19)},
	}}

	candles := parseCandles(result)
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2 (nil day skipped)", len(candles))
	}
	if candles[0].Time != "2024-01-09" {
		t.Errorf("time: got %q", candles[0].Time)
	}
	if candles[0].Open != 184.35 || candles[0].Close != 184.25 {
		t.Errorf("candle[0]: %+v", candles[0])
	}
	if candles[1].Close != 186.19 {
		t.Errorf("candle[1]: %+v", candles[1])
	}
}

func TestParseCandles_Empty(t *testing.T) {
	if got := parseCandles(yfChartResult{}); got != nil {
		t.Errorf("expected nil for empty result, got %v", got)
	}
}
