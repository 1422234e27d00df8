// Command import-debug is a manual diagnostic for the CoinGecko provider
// adapter and the import pipeline around it. It resolves each symbol's coin
// id, fetches metadata, the current quote and a daily price history, then
// materializes a synthetic account's balance series from the result.
//
// It is scaffolding for humans debugging provider issues, not a system
// component: nothing schedules it and nothing consumes its output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/drewzeee/sure/accounts"
	"github.com/drewzeee/sure/cache"
	"github.com/drewzeee/sure/coingecko"
	"github.com/drewzeee/sure/config"
)

func main() {
	var (
		configPath string
		symbolsCSV string
		currency   string
		days       int
	)

	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&symbolsCSV, "symbols", "btc=0.5,eth=10", "comma-separated symbol=quantity holdings (quantity defaults to 1)")
	flag.StringVar(&currency, "currency", "", "quote currency (default from config)")
	flag.IntVar(&days, "days", 7, "number of days of price history to import")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	holdings, err := parseHoldings(symbolsCSV)
	if err != nil {
		log.Fatal("Error parsing -symbols:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, aborting...")
		cancel()
	}()

	cacheService := cache.NewService(cfg.Cache)
	provider := coingecko.NewProvider(cfg.Coingecko, cacheService)

	if currency == "" {
		currency = cfg.Coingecko.DefaultCurrency
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(days - 1))

	// Step 1: resolution and metadata, one line per symbol
	infoTable := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(infoTable, "SYMBOL\tCOIN ID\tNAME\tCURRENT PRICE\tLOGO")
	for _, holding := range holdings {
		coinID, err := provider.ResolveCoinID(ctx, holding.Symbol)
		if err != nil {
			log.Fatalf("Resolving %s: %v", holding.Symbol, err)
		}

		security, err := provider.FetchSecurityInfo(ctx, holding.Symbol)
		if err != nil {
			log.Fatalf("Fetching info for %s: %v", holding.Symbol, err)
		}

		price, err := provider.FetchSecurityPrice(ctx, holding.Symbol, currency)
		if err != nil {
			log.Fatalf("Fetching price for %s: %v", holding.Symbol, err)
		}

		fmt.Fprintf(infoTable, "%s\t%s\t%s\t%.2f %s\t%s\n",
			security.Symbol, coinID, security.Name, price.Price, strings.ToUpper(price.Currency), security.LogoURL)
	}
	infoTable.Flush()
	fmt.Println()

	// Step 2: price history import and balance materialization
	account := accounts.NewAccount("import-debug", currency)
	materializer := &accounts.Materializer{}

	prices, err := materializer.LoadPrices(ctx, provider, holdings, currency, start, end)
	if err != nil {
		log.Fatal("Loading price history:", err)
	}

	balances := materializer.Materialize(account, holdings, prices)

	balanceTable := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(balanceTable, "DATE\tBALANCE")
	for _, balance := range balances {
		fmt.Fprintf(balanceTable, "%s\t%.2f %s\n",
			balance.Date.Format("2006-01-02"), balance.Value, strings.ToUpper(balance.Currency))
	}
	balanceTable.Flush()

	log.Printf("Done: %d symbols, %d balance days, %d cache entries",
		len(holdings), len(balances), cacheService.ItemCount())
}

// parseHoldings parses "btc=0.5,eth" into holdings; a missing quantity
// means 1.
func parseHoldings(csv string) ([]accounts.Holding, error) {
	var holdings []accounts.Holding

	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		symbol, quantityStr, hasQuantity := strings.Cut(part, "=")
		quantity := 1.0
		if hasQuantity {
			var err error
			quantity, err = strconv.ParseFloat(strings.TrimSpace(quantityStr), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid quantity in %q: %w", part, err)
			}
		}

		holdings = append(holdings, accounts.Holding{
			Symbol:   strings.TrimSpace(symbol),
			Quantity: quantity,
		})
	}

	if len(holdings) == 0 {
		return nil, fmt.Errorf("no symbols given")
	}

	return holdings, nil
}
