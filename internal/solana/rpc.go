package solana

import "context"

// RPCClient defines the read-only Solana RPC surface used for account lookups.
type RPCClient interface {
	// GetAccountInfo retrieves account info by public key.
	// Returns nil if the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)

	// GetSlot retrieves the current slot.
	GetSlot(ctx context.Context) (int64, error)

	// GetHealth reports whether the RPC node considers itself healthy.
	GetHealth(ctx context.Context) error
}

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64
	Owner      string // base58 program that owns the account
	Data       []byte // raw account data
	Executable bool
	RentEpoch  uint64
	Slot       int64 // RPC context slot at which the account was read
}
