// Command checkcoinbase prints the coinbase text of a range of blocks by
// driving a local node CLI (bitcoin-cli by default).
//
// Usage examples:
//
//	checkcoinbase 0                ← genesis block
//	checkcoinbase 840000 840010    ← inclusive range
//	checkcoinbase --cli-arg=-testnet --script 2500000
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
