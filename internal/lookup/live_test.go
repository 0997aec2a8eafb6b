package lookup

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"solana-token-meta/internal/solana"
)

// usdcMint is the mainnet USDC mint, used as a stable reference token.
const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

// TestService_Lookup_Mainnet runs against a real RPC node. Set
// TOKENMETA_RPC_ENDPOINT to enable it.
func TestService_Lookup_Mainnet(t *testing.T) {
	endpoint := os.Getenv("TOKENMETA_RPC_ENDPOINT")
	if endpoint == "" {
		t.Skip("TOKENMETA_RPC_ENDPOINT not set")
	}

	svc := NewService(solana.NewHTTPClient(endpoint, solana.WithTimeout(30*time.Second)))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	record, err := svc.Lookup(ctx, usdcMint)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if record.Symbol != "USDC" {
		t.Errorf("expected symbol USDC, got %q", record.Symbol)
	}

	if record.Name == "" || record.UpdateAuthority == "" {
		t.Errorf("expected populated record, got %+v", record)
	}

	if record.Decimals != 6 {
		t.Errorf("expected 6 decimals, got %d", record.Decimals)
	}

	if record.Slot == 0 {
		t.Error("expected non-zero slot")
	}
}

// TestService_Lookup_Mainnet_NotFound checks that a nonexistent mint is a
// not-found result, not a crash.
func TestService_Lookup_Mainnet_NotFound(t *testing.T) {
	endpoint := os.Getenv("TOKENMETA_RPC_ENDPOINT")
	if endpoint == "" {
		t.Skip("TOKENMETA_RPC_ENDPOINT not set")
	}

	svc := NewService(solana.NewHTTPClient(endpoint, solana.WithTimeout(30*time.Second)))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// A syntactically valid pubkey with no account behind it
	_, err := svc.Lookup(ctx, testPubkey(251))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
