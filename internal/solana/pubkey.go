package solana

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the byte length of an ed25519 public key.
const PublicKeyLength = 32

// MaxSeedLength is the maximum byte length of a single PDA seed.
const MaxSeedLength = 32

// ErrInvalidPublicKey is returned for strings that do not decode to a
// 32-byte public key.
var ErrInvalidPublicKey = errors.New("invalid public key")

// DecodePublicKey decodes a base58 public key and validates its length.
func DecodePublicKey(s string) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(raw) != PublicKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(raw), PublicKeyLength)
	}
	return raw, nil
}

// CreateProgramAddress derives a program address from seeds and a program ID.
// Returns an error if the resulting point lies on the ed25519 curve, in which
// case the caller should try a different bump seed.
func CreateProgramAddress(seeds [][]byte, programID []byte) (string, error) {
	if len(programID) != PublicKeyLength {
		return "", fmt.Errorf("%w: program id must be %d bytes", ErrInvalidPublicKey, PublicKeyLength)
	}

	data := make([]byte, 0, 128)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return "", fmt.Errorf("seed too long: %d bytes", len(seed))
		}
		data = append(data, seed...)
	}
	data = append(data, programID...)
	data = append(data, []byte("ProgramDerivedAddress")...)

	hash := sha256.Sum256(data)

	if isOnCurve(hash[:]) {
		return "", errors.New("derived address is on the ed25519 curve")
	}

	return base58.Encode(hash[:]), nil
}

// FindProgramAddress finds a valid program derived address and its bump seed.
// It appends bump values starting at 255 and decreasing until the derived
// point falls off the ed25519 curve.
func FindProgramAddress(seeds [][]byte, programID []byte) (string, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, byte(bump), nil
		}
	}
	return "", 0, errors.New("unable to find a viable program address bump seed")
}

func isOnCurve(point []byte) bool {
	if len(point) != PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
