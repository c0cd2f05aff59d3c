package coinbase

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// Push is one data push of a coinbase script.
type Push struct {
	Hex  string
	Text string
}

// Pushes parses raw coinbase bytes as a Bitcoin script and returns its
// data pushes in order. Post-BIP34 blocks start with the height push;
// miner tags and extranonces follow.
func Pushes(raw []byte) ([]Push, error) {
	data, err := txscript.PushedData(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coinbase script: %w", err)
	}

	pushes := make([]Push, 0, len(data))
	for _, d := range data {
		pushes = append(pushes, Push{
			Hex:  hex.EncodeToString(d),
			Text: Text(d),
		})
	}
	return pushes, nil
}
