package metaplex

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"solana-token-meta/internal/solana"
)

// testPubkey returns a deterministic valid base58 32-byte pubkey.
func testPubkey(fill byte) string {
	return base58.Encode(bytes.Repeat([]byte{fill}, solana.PublicKeyLength))
}

func TestDecode_RoundTrip(t *testing.T) {
	original := &Metadata{
		UpdateAuthority:      testPubkey(1),
		Mint:                 testPubkey(2),
		Name:                 "Degen Token",
		Symbol:               "DGN",
		URI:                  "https://arweave.net/abc123",
		SellerFeeBasisPoints: 550,
		Creators: []Creator{
			{Address: testPubkey(3), Verified: true, Share: 60},
			{Address: testPubkey(4), Verified: false, Share: 40},
		},
		PrimarySaleHappened: true,
		IsMutable:           true,
	}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestDecode_RoundTripNoCreators(t *testing.T) {
	original := &Metadata{
		UpdateAuthority:      testPubkey(9),
		Mint:                 testPubkey(10),
		Name:                 "Plain",
		Symbol:               "PLN",
		URI:                  "https://example.com/plain.json",
		SellerFeeBasisPoints: 0,
	}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Nil(t, decoded.Creators)
	require.Equal(t, original, decoded)
}

func TestDecode_TrimsNULPadding(t *testing.T) {
	// On-chain string buffers are fixed-size and NUL-padded
	padded := &Metadata{
		UpdateAuthority: testPubkey(1),
		Mint:            testPubkey(2),
		Name:            "Padded\x00\x00\x00\x00",
		Symbol:          "PAD\x00\x00",
		URI:             "https://example.com/p.json\x00\x00",
	}

	data, err := Encode(padded)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "Padded", decoded.Name)
	require.Equal(t, "PAD", decoded.Symbol)
	require.Equal(t, "https://example.com/p.json", decoded.URI)
}

func TestDecode_ToleratesTrailingBytes(t *testing.T) {
	// Real accounts carry additional fields and padding after is_mutable
	original := &Metadata{
		UpdateAuthority: testPubkey(1),
		Mint:            testPubkey(2),
		Name:            "Tail",
		Symbol:          "TL",
		URI:             "https://example.com/t.json",
		IsMutable:       true,
	}

	data, err := Encode(original)
	require.NoError(t, err)
	data = append(data, make([]byte, 100)...)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestDecode_Truncated(t *testing.T) {
	full, err := Encode(&Metadata{
		UpdateAuthority:      testPubkey(1),
		Mint:                 testPubkey(2),
		Name:                 "Trunc",
		Symbol:               "TRC",
		URI:                  "https://example.com/trc.json",
		SellerFeeBasisPoints: 100,
		Creators:             []Creator{{Address: testPubkey(3), Verified: true, Share: 100}},
	})
	require.NoError(t, err)

	// Every strict prefix must fail with a malformed-data error
	for n := 0; n < len(full); n++ {
		_, err := Decode(full[:n])
		require.ErrorIs(t, err, ErrMalformedData, "prefix of %d bytes", n)
	}
}

func TestDecode_WrongKey(t *testing.T) {
	data, err := Encode(&Metadata{
		UpdateAuthority: testPubkey(1),
		Mint:            testPubkey(2),
		Name:            "Key",
		Symbol:          "K",
		URI:             "u",
	})
	require.NoError(t, err)

	data[0] = 7 // not MetadataV1

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrMalformedData)
}

func TestDecode_SellerFeeOutOfRange(t *testing.T) {
	data, err := Encode(&Metadata{
		UpdateAuthority:      testPubkey(1),
		Mint:                 testPubkey(2),
		Name:                 "Fee",
		Symbol:               "F",
		URI:                  "u",
		SellerFeeBasisPoints: MaxSellerFeeBasisPoints + 1,
	})
	require.NoError(t, err)

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrMalformedData)
}

func TestDecode_AbsurdLengths(t *testing.T) {
	base := func() []byte {
		buf := []byte{MetadataV1Key}
		buf = append(buf, bytes.Repeat([]byte{1}, 32)...) // update authority
		buf = append(buf, bytes.Repeat([]byte{2}, 32)...) // mint
		return buf
	}

	t.Run("name length", func(t *testing.T) {
		buf := append(base(), 0xFF, 0xFF, 0xFF, 0xFF) // name_len = 2^32-1
		_, err := Decode(buf)
		require.ErrorIs(t, err, ErrMalformedData)
	})

	t.Run("creators count", func(t *testing.T) {
		buf := base()
		buf = append(buf, 0, 0, 0, 0)       // empty name
		buf = append(buf, 0, 0, 0, 0)       // empty symbol
		buf = append(buf, 0, 0, 0, 0)       // empty uri
		buf = append(buf, 0, 0)             // fee
		buf = append(buf, 1)                // has creators
		buf = append(buf, 0xE8, 0x03, 0, 0) // count = 1000
		_, err := Decode(buf)
		require.ErrorIs(t, err, ErrMalformedData)
	})
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrMalformedData)
}

func TestMetadataAddress(t *testing.T) {
	mint := testPubkey(42)

	addr, err := MetadataAddress(mint)
	require.NoError(t, err)

	raw, err := base58.Decode(addr)
	require.NoError(t, err)
	require.Len(t, raw, solana.PublicKeyLength)

	// Deterministic
	addr2, err := MetadataAddress(mint)
	require.NoError(t, err)
	require.Equal(t, addr, addr2)

	// Distinct mints derive distinct accounts
	other, err := MetadataAddress(testPubkey(43))
	require.NoError(t, err)
	require.NotEqual(t, addr, other)
}

func TestMetadataAddress_KnownVector(t *testing.T) {
	// Mainnet USDC: the derived metadata account is pinned on chain, so a
	// seed-order or hashing mistake cannot pass this test
	addr, err := MetadataAddress("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	require.NoError(t, err)
	require.Equal(t, "5x38Kp4hvdomTCnCrAny4UtMUt5rQBdB6px2K1Ui45Wq", addr)
}

func TestMetadataAddress_InvalidMint(t *testing.T) {
	_, err := MetadataAddress("not a mint")
	require.Error(t, err)
}
