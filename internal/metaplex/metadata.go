// Package metaplex implements the Token Metadata program account layout.
package metaplex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"solana-token-meta/internal/solana"
)

// ProgramID is the Token Metadata program address.
const ProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

// MetadataV1Key is the account discriminator for metadata accounts.
const MetadataV1Key = 4

// MaxSellerFeeBasisPoints is the upper bound of the royalty field (100%).
const MaxSellerFeeBasisPoints = 10000

// Sanity bounds for variable-length fields. On chain the buffers are
// fixed-size and NUL-padded (name 32, symbol 10, uri 200, up to 5 creators);
// anything far past that indicates a corrupt buffer.
const (
	maxNameLength    = 128
	maxSymbolLength  = 32
	maxURILength     = 512
	maxCreatorsCount = 16
)

// ErrMalformedData is returned when account bytes do not match the
// metadata layout.
var ErrMalformedData = errors.New("malformed metadata account data")

// Metadata is a decoded Token Metadata account.
// Layout:
//   - key: u8 (4 = MetadataV1)
//   - updateAuthority: Pubkey (32 bytes)
//   - mint: Pubkey (32 bytes)
//   - name, symbol, uri: borsh String (u32 LE length + bytes)
//   - sellerFeeBasisPoints: u16 LE
//   - creators: Option<Vec<Creator>> (u8 tag; u32 LE count; each
//     32-byte pubkey + verified u8 + share u8)
//   - primarySaleHappened: u8
//   - isMutable: u8
type Metadata struct {
	UpdateAuthority      string
	Mint                 string
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	PrimarySaleHappened  bool
	IsMutable            bool
}

// Creator is one entry of the optional creators list.
type Creator struct {
	Address  string
	Verified bool
	Share    uint8
}

// MetadataAddress derives the metadata account address for a mint.
// Seeds: ["metadata", program id, mint].
func MetadataAddress(mint string) (string, error) {
	mintBytes, err := solana.DecodePublicKey(mint)
	if err != nil {
		return "", fmt.Errorf("decode mint: %w", err)
	}

	programBytes, err := solana.DecodePublicKey(ProgramID)
	if err != nil {
		return "", fmt.Errorf("decode program id: %w", err)
	}

	seeds := [][]byte{
		[]byte("metadata"),
		programBytes,
		mintBytes,
	}

	addr, _, err := solana.FindProgramAddress(seeds, programBytes)
	if err != nil {
		return "", fmt.Errorf("derive metadata address: %w", err)
	}
	return addr, nil
}

// Decode parses metadata account bytes. Every read is bounds-checked;
// short buffers, bad discriminators, and out-of-range fields return
// ErrMalformedData.
func Decode(data []byte) (*Metadata, error) {
	r := reader{data: data}

	key, err := r.byte()
	if err != nil {
		return nil, err
	}
	if key != MetadataV1Key {
		return nil, fmt.Errorf("%w: key %d, want %d", ErrMalformedData, key, MetadataV1Key)
	}

	var m Metadata

	if m.UpdateAuthority, err = r.pubkey(); err != nil {
		return nil, err
	}
	if m.Mint, err = r.pubkey(); err != nil {
		return nil, err
	}

	if m.Name, err = r.borshString("name", maxNameLength); err != nil {
		return nil, err
	}
	if m.Symbol, err = r.borshString("symbol", maxSymbolLength); err != nil {
		return nil, err
	}
	if m.URI, err = r.borshString("uri", maxURILength); err != nil {
		return nil, err
	}

	fee, err := r.uint16()
	if err != nil {
		return nil, err
	}
	if fee > MaxSellerFeeBasisPoints {
		return nil, fmt.Errorf("%w: seller fee %d exceeds %d basis points", ErrMalformedData, fee, MaxSellerFeeBasisPoints)
	}
	m.SellerFeeBasisPoints = fee

	hasCreators, err := r.byte()
	if err != nil {
		return nil, err
	}
	if hasCreators != 0 {
		count, err := r.uint32()
		if err != nil {
			return nil, err
		}
		if count > maxCreatorsCount {
			return nil, fmt.Errorf("%w: creators count %d", ErrMalformedData, count)
		}

		m.Creators = make([]Creator, 0, count)
		for i := uint32(0); i < count; i++ {
			var c Creator
			if c.Address, err = r.pubkey(); err != nil {
				return nil, err
			}
			verified, err := r.byte()
			if err != nil {
				return nil, err
			}
			c.Verified = verified != 0
			if c.Share, err = r.byte(); err != nil {
				return nil, err
			}
			m.Creators = append(m.Creators, c)
		}
	}

	psh, err := r.byte()
	if err != nil {
		return nil, err
	}
	m.PrimarySaleHappened = psh != 0

	mutable, err := r.byte()
	if err != nil {
		return nil, err
	}
	m.IsMutable = mutable != 0

	return &m, nil
}

// reader is a bounds-checked cursor over account bytes.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformedData, n, r.pos, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) pubkey() (string, error) {
	b, err := r.take(solana.PublicKeyLength)
	if err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}

// borshString reads a u32 length-prefixed string and trims NUL padding.
func (r *reader) borshString(field string, max int) (string, error) {
	n, err := r.uint32()
	if err != nil {
		return "", err
	}
	if int(n) > max {
		return "", fmt.Errorf("%w: %s length %d exceeds %d", ErrMalformedData, field, n, max)
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}
