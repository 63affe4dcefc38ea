// Package yfinance implements the Yahoo Finance market-data provider.
// It wraps Yahoo Finance's public APIs (v7 options, v7 quote, v8 chart)
// behind the provider.MarketData interface.
//
// Yahoo Finance is a free, no-API-key provider that covers options chains
// for US equities and ETFs.
package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/seenimoa/optionscope/internal/infra"
	"github.com/seenimoa/optionscope/internal/provider"
	"github.com/seenimoa/optionscope/pkg/models"
	"github.com/seenimoa/optionscope/pkg/utils"
)

const providerName = "yfinance"

const (
	optionsURL = "https://query1.finance.yahoo.com/v7/finance/options/%s"
	quoteURL   = "https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s"
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s?range=%s&interval=%s"
)

// Provider implements provider.MarketData for Yahoo Finance.
type Provider struct {
	cache    *infra.Cache
	limiter  *infra.RateLimiter
	chainTTL time.Duration
}

var _ provider.MarketData = (*Provider)(nil)

// New creates a Yahoo Finance provider. cacheTTL bounds how long option
// chain snapshots are reused; rateLimit is requests per second.
func New(cacheTTL time.Duration, rateLimit int) *Provider {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if rateLimit <= 0 {
		rateLimit = 5
	}
	return &Provider{
		cache:    infra.NewCache(cacheTTL),
		limiter:  infra.NewRateLimiter(rateLimit, time.Second),
		chainTTL: cacheTTL,
	}
}

// Name returns the registry name.
func (p *Provider) Name() string { return providerName }

// Ping checks connectivity to Yahoo Finance.
func (p *Provider) Ping(ctx context.Context) error {
	body, _, err := infra.DoGet(ctx, fmt.Sprintf(quoteURL, "AAPL"), jsonHeaders())
	if err != nil {
		return fmt.Errorf("yfinance ping: %w", err)
	}
	body.Close()
	return nil
}

// Expirations returns all listed expiration dates for a ticker, nearest first.
func (p *Provider) Expirations(ctx context.Context, ticker string) ([]string, error) {
	snap, err := p.OptionChain(ctx, ticker, "")
	if err != nil {
		return nil, err
	}
	return snap.Expirations, nil
}

// CurrentPrice returns the underlying's regular-market price from the v7
// quote API.
func (p *Provider) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	symbol := utils.NormalizeTicker(ticker)

	cacheKey := "quote:" + symbol
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.(float64), nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	var resp yfQuoteResponse
	if err := fetchJSON(ctx, fmt.Sprintf(quoteURL, symbol), &resp); err != nil {
		return 0, p.upstream(fmt.Errorf("quote %s: %w", symbol, err))
	}
	if resp.QuoteResponse.Error != nil {
		return 0, p.upstream(fmt.Errorf("quote %s: %s", symbol, resp.QuoteResponse.Error.Description))
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return 0, p.upstream(fmt.Errorf("no quote for %s", symbol))
	}

	price := resp.QuoteResponse.Result[0].RegularMarketPrice
	p.cache.Set(cacheKey, price)
	return price, nil
}

// OptionChain fetches the chain snapshot for a ticker. An empty expiration
// selects Yahoo's nearest listed date. Unknown symbols and underlyings
// without listed options surface as ErrNoExpirations.
func (p *Provider) OptionChain(ctx context.Context, ticker, expiration string) (*models.ChainSnapshot, error) {
	symbol := utils.NormalizeTicker(ticker)

	cacheKey := "options:" + symbol + ":" + expiration
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.(*models.ChainSnapshot), nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(optionsURL, symbol)
	if expiration != "" {
		t, err := time.Parse("2006-01-02", expiration)
		if err != nil {
			return nil, p.upstream(fmt.Errorf("bad expiration %q: %w", expiration, err))
		}
		url += fmt.Sprintf("?date=%d", t.UTC().Unix())
	}

	var resp yfOptionsResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, p.upstream(fmt.Errorf("options %s: %w", symbol, err))
	}
	if resp.OptionChain.Error != nil {
		if resp.OptionChain.Error.Code == "Not Found" {
			return nil, &provider.ErrNoExpirations{Ticker: symbol}
		}
		return nil, p.upstream(fmt.Errorf("options %s: %s", symbol, resp.OptionChain.Error.Description))
	}
	if len(resp.OptionChain.Result) == 0 {
		return nil, &provider.ErrNoExpirations{Ticker: symbol}
	}

	r := resp.OptionChain.Result[0]
	if len(r.ExpirationDates) == 0 {
		return nil, &provider.ErrNoExpirations{Ticker: symbol}
	}

	snap := &models.ChainSnapshot{
		Ticker:    symbol,
		SpotPrice: r.Quote.RegularMarketPrice,
		FetchedAt: time.Now(),
	}

	snap.Expirations = make([]string, 0, len(r.ExpirationDates))
	for _, ts := range r.ExpirationDates {
		snap.Expirations = append(snap.Expirations, time.Unix(ts, 0).UTC().Format("2006-01-02"))
	}

	for _, opt := range r.Options {
		snap.Expiration = time.Unix(opt.ExpirationDate, 0).UTC().Format("2006-01-02")
		for _, c := range opt.Calls {
			snap.Calls = append(snap.Calls, toContract(c))
		}
		for _, c := range opt.Puts {
			snap.Puts = append(snap.Puts, toContract(c))
		}
	}

	p.cache.SetWithTTL(cacheKey, snap, p.chainTTL)
	return snap, nil
}

// HistoricalBars fetches daily OHLC bars from the v8 chart API, oldest first.
func (p *Provider) HistoricalBars(ctx context.Context, ticker, barRange, interval string) ([]models.Candle, error) {
	symbol := utils.NormalizeTicker(ticker)
	if barRange == "" {
		barRange = "1mo"
	}
	if interval == "" {
		interval = "1d"
	}

	cacheKey := "chart:" + symbol + ":" + barRange + ":" + interval
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.([]models.Candle), nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp yfChartResponse
	if err := fetchJSON(ctx, fmt.Sprintf(chartURL, symbol, barRange, interval), &resp); err != nil {
		return nil, p.upstream(fmt.Errorf("chart %s: %w", symbol, err))
	}
	if resp.Chart.Error != nil {
		return nil, p.upstream(fmt.Errorf("chart %s: %s", symbol, resp.Chart.Error.Description))
	}
	if len(resp.Chart.Result) == 0 {
		return nil, p.upstream(fmt.Errorf("no chart data for %s", symbol))
	}

	candles := parseCandles(resp.Chart.Result[0])
	p.cache.SetWithTTL(cacheKey, candles, 15*time.Minute)
	return candles, nil
}

// --- Helpers ---

func (p *Provider) upstream(err error) error {
	return &provider.ErrUpstream{Provider: providerName, Err: err}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchJSON performs a GET request and decodes the response into dest.
func fetchJSON(ctx context.Context, url string, dest any) error {
	body, _, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// toContract maps a raw Yahoo contract row to the provider-neutral model.
// A missing inTheMoney field leaves both moneyness flags false.
func toContract(c yfContract) models.OptionContract {
	out := models.OptionContract{
		ContractSymbol:    c.ContractSymbol,
		Strike:            c.Strike,
		LastPrice:         c.LastPrice,
		Bid:               c.Bid,
		Ask:               c.Ask,
		Volume:            c.Volume,
		OpenInterest:      c.OpenInterest,
		ImpliedVolatility: c.ImpliedVolatility,
		Delta:             c.Delta,
	}
	if c.InTheMoney != nil {
		out.InTheMoney = *c.InTheMoney
		out.OutOfTheMoney = !*c.InTheMoney
	}
	return out
}

// parseCandles converts chart arrays to Candle rows, skipping days where
// any OHLC value is missing.
func parseCandles(result yfChartResult) []models.Candle {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		candles = append(candles, models.Candle{
			Time:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:  *q.Open[i],
			High:  *q.High[i],
			Low:   *q.Low[i],
			Close: *q.Close[i],
		})
	}
	return candles
}
