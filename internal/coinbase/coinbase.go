// Package coinbase locates the coinbase field of a decoded block and turns
// it into readable text.
//
// The coinbase is the scriptSig of the first input of the first
// transaction. Its bytes are chosen by the miner and carry no guaranteed
// encoding, so decoding to text never fails on content, only on bad hex.
package coinbase

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// HexDecodeError is returned when a coinbase payload is not valid hex.
type HexDecodeError struct {
	Payload string
	Err     error
}

func (e *HexDecodeError) Error() string {
	return fmt.Sprintf("invalid coinbase hex: %v", e.Err)
}

func (e *HexDecodeError) Unwrap() error { return e.Err }

// Extract returns tx[0].vin[0].coinbase from a block decoded with full
// transaction detail. The second result is false when any part of the
// path is missing or the field is not a string; that is the normal case
// for blocks without a coinbase input and is not an error.
func Extract(block any) (string, bool) {
	return Lookup(block).
		Field("tx").Index(0).
		Field("vin").Index(0).
		Field("coinbase").
		AsString()
}

// DecodeBytes hex-decodes a coinbase payload.
func DecodeBytes(payload string) ([]byte, error) {
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return nil, &HexDecodeError{Payload: payload, Err: err}
	}
	return raw, nil
}

// Decode hex-decodes a coinbase payload and renders it as text.
func Decode(payload string) (string, error) {
	raw, err := DecodeBytes(payload)
	if err != nil {
		return "", err
	}
	return Text(raw), nil
}

// Text converts arbitrary bytes to UTF-8, replacing each maximal invalid
// subsequence with U+FFFD.
func Text(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[invalidPrefixLen(b):]
	}

	return sb.String()
}

// invalidPrefixLen returns how many leading bytes of b belong to one
// truncated or malformed sequence: the lead byte plus every continuation
// byte that was still acceptable at its position. Always at least 1.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int

	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for i := 1; i <= need && i < len(b); i++ {
		if b[i] < lo || b[i] > hi {
			break
		}
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}
