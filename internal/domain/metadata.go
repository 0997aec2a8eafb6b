package domain

// TokenMetadata is the decoded on-chain metadata for a token mint.
// It is a read-only snapshot of chain state at the slot it was fetched.
type TokenMetadata struct {
	Mint            string `json:"mint"`             // token mint address
	UpdateAuthority string `json:"update_authority"` // authority allowed to mutate the metadata

	Name   string `json:"name"`   // NUL-trimmed, max 32 chars on chain
	Symbol string `json:"symbol"` // NUL-trimmed, max 10 chars on chain
	URI    string `json:"uri"`    // NUL-trimmed, max 200 chars; points to off-chain JSON

	SellerFeeBasisPoints uint16 `json:"seller_fee_basis_points"` // royalty, hundredths of a percent [0, 10000]
	PrimarySaleHappened  bool   `json:"primary_sale_happened"`
	IsMutable            bool   `json:"is_mutable"`

	Creators []Creator `json:"creators,omitempty"` // empty when the account carries no creators

	Decimals int      `json:"decimals"`         // from the SPL mint account
	Supply   *float64 `json:"supply,omitempty"` // total supply adjusted for decimals (nullable)

	Slot      int64 `json:"slot"`       // RPC context slot the metadata account was read at
	FetchedAt int64 `json:"fetched_at"` // when metadata was fetched (ms)
}

// Creator is a single entry of the metadata creators list.
type Creator struct {
	Address  string `json:"address"`  // creator pubkey
	Verified bool   `json:"verified"` // signed by the creator
	Share    uint8  `json:"share"`    // royalty share percentage
}
