package stub

import (
	"context"

	"solana-token-meta/internal/solana"
)

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Accounts map[string]*solana.AccountInfo
	Slot     int64

	// Err, when set, is returned by every call to simulate transport failure.
	Err error
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Accounts: make(map[string]*solana.AccountInfo),
	}
}

// GetAccountInfo retrieves an account from the stub store.
// Returns nil for unknown accounts, matching the HTTP client's behavior.
func (c *RPCClient) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	info, ok := c.Accounts[pubkey]
	if !ok {
		return nil, nil
	}
	return info, nil
}

// GetSlot returns the configured slot.
func (c *RPCClient) GetSlot(_ context.Context) (int64, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	return c.Slot, nil
}

// GetHealth reports the configured error, if any.
func (c *RPCClient) GetHealth(_ context.Context) error {
	return c.Err
}

// AddAccount adds an account to the stub store.
func (c *RPCClient) AddAccount(pubkey string, info *solana.AccountInfo) {
	c.Accounts[pubkey] = info
}

var _ solana.RPCClient = (*RPCClient)(nil)
