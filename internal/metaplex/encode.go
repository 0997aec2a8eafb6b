package metaplex

import (
	"encoding/binary"
	"fmt"

	"solana-token-meta/internal/solana"
)

// Encode serializes a metadata record into the account layout read by
// Decode. Used to build fixtures; the program itself never writes on chain.
func Encode(m *Metadata) ([]byte, error) {
	updateAuthority, err := solana.DecodePublicKey(m.UpdateAuthority)
	if err != nil {
		return nil, fmt.Errorf("update authority: %w", err)
	}
	mint, err := solana.DecodePublicKey(m.Mint)
	if err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, MetadataV1Key)
	buf = append(buf, updateAuthority...)
	buf = append(buf, mint...)

	buf = appendBorshString(buf, m.Name)
	buf = appendBorshString(buf, m.Symbol)
	buf = appendBorshString(buf, m.URI)

	buf = binary.LittleEndian.AppendUint16(buf, m.SellerFeeBasisPoints)

	if len(m.Creators) == 0 {
		buf = append(buf, 0)
	} else {
		buf = append(buf, 1)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Creators)))
		for _, c := range m.Creators {
			addr, err := solana.DecodePublicKey(c.Address)
			if err != nil {
				return nil, fmt.Errorf("creator address: %w", err)
			}
			buf = append(buf, addr...)
			buf = append(buf, boolByte(c.Verified), c.Share)
		}
	}

	buf = append(buf, boolByte(m.PrimarySaleHappened), boolByte(m.IsMutable))
	return buf, nil
}

func appendBorshString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
