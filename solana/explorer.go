package solana

import "strings"

// DefaultExplorerURL is the ledger explorer used for account and transaction links
const DefaultExplorerURL = "https://solscan.io"

// DemoAddresses are well-known wallets offered as starting points in the search UI
var DemoAddresses = []string{
	"vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTg",
	"6NpdXrQEpmJgGJ7SZjMKBJWEUyVgvHr8EZXmLJGZds9K",
}

// ExplorerAccountURL returns the explorer page of an account
func ExplorerAccountURL(base, address string) string {
	return explorerBase(base) + "/account/" + address
}

// ExplorerTxURL returns the explorer page of a transaction
func ExplorerTxURL(base, signature string) string {
	return explorerBase(base) + "/tx/" + signature
}

func explorerBase(base string) string {
	if base == "" {
		return DefaultExplorerURL
	}
	return strings.TrimRight(base, "/")
}
