// Package spltoken implements the SPL Token program account layouts.
package spltoken

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/mr-tron/base58"
)

// MintAccountSize is the fixed size of an SPL Token mint account.
//
// Layout:
//   - mintAuthority: COption<Pubkey> (4 + 32 bytes)
//   - supply: u64 LE
//   - decimals: u8
//   - isInitialized: bool
//   - freezeAuthority: COption<Pubkey> (4 + 32 bytes)
const MintAccountSize = 82

// ErrMalformedMint is returned when account bytes do not match the mint layout.
var ErrMalformedMint = errors.New("malformed mint account data")

// Mint is a decoded SPL Token mint account.
type Mint struct {
	MintAuthority   string // empty when the authority has been revoked
	Supply          uint64 // raw supply, not adjusted for decimals
	Decimals        uint8
	Initialized     bool
	FreezeAuthority string // empty when no freeze authority is set
}

// UISupply returns the supply adjusted for decimals.
func (m *Mint) UISupply() float64 {
	return float64(m.Supply) / math.Pow(10, float64(m.Decimals))
}

// ParseMint parses SPL Token mint account bytes.
func ParseMint(data []byte) (*Mint, error) {
	if len(data) < MintAccountSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedMint, len(data), MintAccountSize)
	}

	var m Mint

	if binary.LittleEndian.Uint32(data[0:4]) != 0 {
		m.MintAuthority = base58.Encode(data[4:36])
	}

	m.Supply = binary.LittleEndian.Uint64(data[36:44])
	m.Decimals = data[44]
	m.Initialized = data[45] != 0

	if binary.LittleEndian.Uint32(data[46:50]) != 0 {
		m.FreezeAuthority = base58.Encode(data[50:82])
	}

	return &m, nil
}
