package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)

	// LamportsPerSOL is 10^SOLDecimals
	LamportsPerSOL = 1_000_000_000
)

// LamportsToSOL converts lamports to SOL without intermediate float rounding
func LamportsToSOL(lamports uint64) float64 {
	return decimal.NewFromUint64(lamports).Shift(-SOLDecimals).InexactFloat64()
}

// SOLToLamports converts a SOL amount to lamports, truncating sub-lamport precision
func SOLToLamports(sol float64) uint64 {
	if sol <= 0 {
		return 0
	}
	return uint64(decimal.NewFromFloat(sol).Shift(SOLDecimals).IntPart())
}

// FormatSOL formats a SOL amount for display, e.g. "1.2345 SOL"
func FormatSOL(sol float64) string {
	return fmt.Sprintf("%.4f SOL", sol)
}

// FormatAddress shortens an address or signature for display.
// Strings of 12 characters or less are returned unchanged.
// Example: FormatAddress("vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTg") = "vines1...KPTg"
func FormatAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// FormatTimestamp formats a millisecond unix timestamp in UTC
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05 MST")
}
