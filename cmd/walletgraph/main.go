// walletgraph explores the transaction network around a Solana wallet.
//
// @title        wallet-graph API
// @version      1.0
// @description  Solana wallet network explorer: wallet data, transaction graphs and force layouts.
// @BasePath     /
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewCLI(os.Stdout).Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
