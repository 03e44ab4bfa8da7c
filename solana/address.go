package solana

import (
	"errors"
	"regexp"

	"github.com/gagliardetto/solana-go"
)

// ErrInvalidAddress is returned when an input is not a well-formed Solana account address
var ErrInvalidAddress = errors.New("invalid Solana wallet address")

// base58 alphabet without 0, O, I and l; 32 zero bytes encode to 32 characters
// and the largest 32-byte key to 44
var addressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsValidAddress reports whether address is a base58 encoded 32-byte public key.
func IsValidAddress(address string) bool {
	if !addressPattern.MatchString(address) {
		return false
	}
	// The pattern admits strings that decode to fewer or more than 32 bytes
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}
