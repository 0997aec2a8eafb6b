// Package lookup resolves a mint address to its decoded token metadata.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solana-token-meta/internal/domain"
	"solana-token-meta/internal/metaplex"
	"solana-token-meta/internal/observability"
	"solana-token-meta/internal/solana"
	"solana-token-meta/internal/spltoken"
)

// ErrInvalidMint is returned for inputs that are not a valid mint address.
var ErrInvalidMint = errors.New("invalid mint address")

// ErrNotFound is returned when the mint has no metadata account on chain.
var ErrNotFound = errors.New("metadata account not found")

// Service performs metadata lookups over a Solana RPC client.
type Service struct {
	rpc solana.RPCClient
}

// NewService creates a new lookup service.
func NewService(rpc solana.RPCClient) *Service {
	return &Service{rpc: rpc}
}

// Lookup fetches and decodes the token metadata for a mint address.
// Returns ErrInvalidMint for malformed input, ErrNotFound when the mint or
// its metadata account does not exist, and metaplex.ErrMalformedData when
// the account bytes do not match the metadata layout.
func (s *Service) Lookup(ctx context.Context, mint string) (*domain.TokenMetadata, error) {
	start := time.Now()
	record, err := s.lookup(ctx, mint)
	observability.RecordLookup(outcome(err), time.Since(start).Seconds())
	return record, err
}

func (s *Service) lookup(ctx context.Context, mint string) (*domain.TokenMetadata, error) {
	if _, err := solana.DecodePublicKey(mint); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMint, mint)
	}

	record := &domain.TokenMetadata{
		Mint:      mint,
		FetchedAt: time.Now().UnixMilli(),
	}

	// The mint account supplies decimals and supply. A missing mint means
	// the token does not exist at all.
	mintInfo, err := s.getAccount(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("get mint account: %w", err)
	}
	if mintInfo == nil {
		return nil, fmt.Errorf("mint %s: %w", mint, ErrNotFound)
	}

	// Tolerate unparseable mint data; the metadata account can still be read
	if parsed, err := spltoken.ParseMint(mintInfo.Data); err == nil {
		record.Decimals = int(parsed.Decimals)
		supply := parsed.UISupply()
		record.Supply = &supply
	}

	metadataAddr, err := metaplex.MetadataAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("derive metadata address: %w", err)
	}

	metaInfo, err := s.getAccount(ctx, metadataAddr)
	if err != nil {
		return nil, fmt.Errorf("get metadata account: %w", err)
	}
	if metaInfo == nil {
		return nil, fmt.Errorf("mint %s: %w", mint, ErrNotFound)
	}

	decoded, err := metaplex.Decode(metaInfo.Data)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", metadataAddr, err)
	}

	// The account's embedded mint must match the one it was derived from
	if decoded.Mint != mint {
		return nil, fmt.Errorf("%w: account %s references mint %s, want %s",
			metaplex.ErrMalformedData, metadataAddr, decoded.Mint, mint)
	}

	record.UpdateAuthority = decoded.UpdateAuthority
	record.Name = decoded.Name
	record.Symbol = decoded.Symbol
	record.URI = decoded.URI
	record.SellerFeeBasisPoints = decoded.SellerFeeBasisPoints
	record.PrimarySaleHappened = decoded.PrimarySaleHappened
	record.IsMutable = decoded.IsMutable
	record.Slot = metaInfo.Slot

	for _, c := range decoded.Creators {
		record.Creators = append(record.Creators, domain.Creator{
			Address:  c.Address,
			Verified: c.Verified,
			Share:    c.Share,
		})
	}

	return record, nil
}

// getAccount wraps GetAccountInfo with RPC metrics.
func (s *Service) getAccount(ctx context.Context, pubkey string) (*solana.AccountInfo, error) {
	start := time.Now()
	info, err := s.rpc.GetAccountInfo(ctx, pubkey)
	observability.RecordRPCLatency("getAccountInfo", time.Since(start).Seconds())
	if err != nil {
		observability.RecordRPCError("getAccountInfo")
	}
	return info, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidMint):
		return "invalid_mint"
	case errors.Is(err, metaplex.ErrMalformedData):
		return "malformed"
	default:
		return "error"
	}
}
