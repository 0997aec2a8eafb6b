package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-token-meta/internal/domain"
	"solana-token-meta/internal/lookup"
	"solana-token-meta/internal/metaplex"
	"solana-token-meta/internal/observability"
	"solana-token-meta/internal/solana"
)

const defaultRPCEndpoint = "https://api.mainnet-beta.solana.com"

func main() {
	// Parse flags
	mint := flag.String("mint", "", "Token mint address (base58)")
	rpcEndpoint := flag.String("rpc-endpoint", defaultRPCEndpoint, "Solana RPC HTTP endpoint")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall lookup timeout")
	output := flag.String("output", "text", "Output format: text or json")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")
	check := flag.Bool("check", false, "Verify RPC endpoint health and exit")
	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[tokenmeta] ", log.LstdFlags)

	// Accept the mint as a positional argument too
	if *mint == "" && flag.NArg() == 1 {
		*mint = flag.Arg(0)
	}
	if *mint == "" && !*check {
		fmt.Fprintln(os.Stderr, "Usage: tokenmeta [flags] <mint-address>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Cancel on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	rpc := solana.NewHTTPClient(*rpcEndpoint, solana.WithTimeout(*timeout))

	if *check {
		if err := rpc.GetHealth(ctx); err != nil {
			logger.Fatalf("RPC endpoint unhealthy: %v", err)
		}
		slot, err := rpc.GetSlot(ctx)
		if err != nil {
			logger.Fatalf("Get slot: %v", err)
		}
		logger.Printf("RPC endpoint healthy, slot %d", slot)
		if *mint == "" {
			return
		}
	}

	svc := lookup.NewService(rpc)

	record, err := svc.Lookup(ctx, *mint)
	if err != nil {
		switch {
		case errors.Is(err, lookup.ErrInvalidMint):
			logger.Fatalf("Invalid mint address: %s", *mint)
		case errors.Is(err, lookup.ErrNotFound):
			logger.Fatalf("No metadata account found for mint %s", *mint)
		case errors.Is(err, metaplex.ErrMalformedData):
			logger.Fatalf("Metadata account is malformed: %v", err)
		default:
			logger.Fatalf("Lookup failed: %v", err)
		}
	}

	switch *output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record); err != nil {
			logger.Fatalf("Encode output: %v", err)
		}
	case "text":
		printText(record)
	default:
		logger.Fatalf("Unknown output format: %s", *output)
	}
}

func printText(m *domain.TokenMetadata) {
	fmt.Printf("Mint:                   %s\n", m.Mint)
	fmt.Printf("Update authority:       %s\n", m.UpdateAuthority)
	fmt.Printf("Name:                   %s\n", m.Name)
	fmt.Printf("Symbol:                 %s\n", m.Symbol)
	fmt.Printf("URI:                    %s\n", m.URI)
	fmt.Printf("Seller fee:             %d bps\n", m.SellerFeeBasisPoints)
	fmt.Printf("Primary sale happened:  %t\n", m.PrimarySaleHappened)
	fmt.Printf("Mutable:                %t\n", m.IsMutable)
	fmt.Printf("Decimals:               %d\n", m.Decimals)
	if m.Supply != nil {
		fmt.Printf("Supply:                 %f\n", *m.Supply)
	}
	fmt.Printf("Slot:                   %d\n", m.Slot)

	if len(m.Creators) > 0 {
		fmt.Println("Creators:")
		for _, c := range m.Creators {
			fmt.Printf("  %s  share=%d%%  verified=%t\n", c.Address, c.Share, c.Verified)
		}
	}
}
