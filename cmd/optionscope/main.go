// optionscope — options chain filtering and screening for US equities.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/optionscope/api"
	"github.com/seenimoa/optionscope/internal/config"
	"github.com/seenimoa/optionscope/internal/options"
	"github.com/seenimoa/optionscope/internal/provider"
	"github.com/seenimoa/optionscope/internal/providers/yfinance"
	"github.com/seenimoa/optionscope/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "optionscope",
	Short: "optionscope — options chain filtering and screening",
	Long: `optionscope
Fetches options chains for US equities and ETFs, filters them by
liquidity and spread, ranks contracts by volume, and screens multiple
tickers for liquid contracts. Ships an HTTP API for the web frontend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		provider.RegisterProvider(yfinance.New(
			time.Duration(cfg.Provider.CacheTTL)*time.Second,
			cfg.Provider.RateLimit,
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(expirationsCmd)
	rootCmd.AddCommand(statusCmd)
}

// newEngine resolves the configured provider into an engine.
func newEngine() (*options.Engine, error) {
	data, err := provider.Global().Get(cfg.Provider.Name)
	if err != nil {
		return nil, err
	}
	return options.NewEngine(data), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("optionscope %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg, provider.Global())
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting optionscope API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Chain Command ---

var chainCmd = &cobra.Command{
	Use:   "chain [ticker]",
	Short: "Fetch and filter the options chain for a ticker",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := cfg.Options.DefaultTicker
		if len(args) > 0 {
			ticker = args[0]
		}
		expiration, _ := cmd.Flags().GetString("expiration")

		filterCfg := options.DefaultFilterConfig()
		filterCfg.MinVolume, _ = cmd.Flags().GetInt64("min-volume")
		filterCfg.MinOpenInterest, _ = cmd.Flags().GetInt64("min-oi")
		if maxSpread, _ := cmd.Flags().GetFloat64("max-spread"); maxSpread > 0 {
			filterCfg.MaxBidAskSpreadPct = &maxSpread
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := engine.Query(ctx, ticker, expiration, filterCfg)
		if err != nil {
			return err
		}

		fmt.Printf("%s  $%.2f  expiring %s  (%d expirations listed)\n\n",
			result.Ticker, result.CurrentPrice, result.Expiration, len(result.AvailableExpirations))
		printSide("CALLS", result.Calls)
		printSide("PUTS", result.Puts)
		return nil
	},
}

func init() {
	chainCmd.Flags().String("expiration", "", "expiration date (YYYY-MM-DD, default nearest)")
	chainCmd.Flags().Int64("min-volume", 0, "minimum contract volume")
	chainCmd.Flags().Int64("min-oi", 0, "minimum open interest")
	chainCmd.Flags().Float64("max-spread", 0, "maximum bid-ask spread percent")
}

func printSide(label string, contracts []options.EnrichedOption) {
	fmt.Printf("%s (%d)\n", label, len(contracts))
	if len(contracts) == 0 {
		fmt.Println("  (none)")
		return
	}

	fmt.Printf("  %-10s %-10s %-10s %-10s %-8s %-8s %-9s %-6s\n",
		"STRIKE", "LAST", "BID", "ASK", "VOL", "OI", "SPREAD%", "MNY")
	for _, c := range contracts {
		fmt.Printf("  %-10.2f %-10.2f %-10.2f %-10.2f %-8d %-8d %-9.2f %-6s\n",
			c.Strike, c.LastPrice, c.Bid, c.Ask, c.Volume, c.OpenInterest,
			c.BidAskSpreadPercent, c.Moneyness)
	}
	fmt.Println()
}

// --- Screen Command ---

var screenCmd = &cobra.Command{
	Use:   "screen [tickers...]",
	Short: "Screen multiple tickers for liquid contracts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		optionType, _ := cmd.Flags().GetString("type")

		filterCfg := options.FilterConfig{
			MinVolume:       cfg.Options.ScreenerMinVolume,
			MinOpenInterest: cfg.Options.ScreenerMinOpenInt,
			OptionType:      options.OptionType(optionType),
		}
		maxSpread := cfg.Options.ScreenerMaxSpreadPct
		filterCfg.MaxBidAskSpreadPct = &maxSpread

		engine, err := newEngine()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		rows := engine.Screen(ctx, args, filterCfg)
		if len(rows) == 0 {
			fmt.Println("No contracts passed the filters.")
			return nil
		}

		fmt.Printf("%-8s %-6s %-12s %-10s %-10s %-8s %-8s %-10s\n",
			"TICKER", "TYPE", "EXPIRY", "STRIKE", "LAST", "VOL", "OI", "SPOT")
		for _, r := range rows {
			fmt.Printf("%-8s %-6s %-12s %-10.2f %-10.2f %-8d %-8d %-10.2f\n",
				r.Ticker, r.Type, r.Expiration, r.Strike, r.LastPrice,
				r.Volume, r.OpenInterest, r.CurrentPrice)
		}
		return nil
	},
}

func init() {
	screenCmd.Flags().String("type", "both", "option type to scan: calls, puts, or both")
}

// --- Expirations Command ---

var expirationsCmd = &cobra.Command{
	Use:   "expirations [ticker]",
	Short: "List available expiration dates for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])

		data, err := provider.Global().Get(cfg.Provider.Name)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		expirations, err := data.Expirations(ctx, ticker)
		if err != nil {
			return err
		}

		fmt.Printf("%s — %d expirations:\n", ticker, len(expirations))
		for _, e := range expirations {
			fmt.Printf("  %s\n", e)
		}
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  optionscope — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:      %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Provider:      %s (cache %ds, %d req/s)\n",
			cfg.Provider.Name, cfg.Provider.CacheTTL, cfg.Provider.RateLimit)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Default:       %s\n", cfg.Options.DefaultTicker)
		fmt.Printf("    Screener:      vol≥%d oi≥%d spread≤%.1f%% (%s)\n",
			cfg.Options.ScreenerMinVolume, cfg.Options.ScreenerMinOpenInt,
			cfg.Options.ScreenerMaxSpreadPct, cfg.Options.ScreenerOptionType)
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		fmt.Println("  Providers:")
		for name, err := range provider.Global().PingAll(ctx) {
			status := "✅ reachable"
			if err != nil {
				status = "❌ " + strings.TrimSpace(err.Error())
			}
			fmt.Printf("    %-12s %s\n", name+":", status)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
