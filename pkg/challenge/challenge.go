// Package challenge decodes the NTLM server challenge configured for all
// capturing servers.
package challenge

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the challenge length in bytes.
const Size = 8

// Example is a well-formed challenge shown to operators.
const Example = "1122334455667788"

var (
	ErrLength     = errors.New("challenge must be exactly 16 chars long")
	ErrInvalidHex = errors.New("challenge must be hexadecimal")
)

// Challenge holds the raw challenge bytes in configuration order.
type Challenge [Size]byte

// Decode converts a 16 character hex string into a Challenge.
func Decode(s string) (Challenge, error) {
	var c Challenge
	if len(s) != 2*Size {
		return c, fmt.Errorf("%w: got %d", ErrLength, len(s))
	}
	for i := 0; i < Size; i++ {
		if _, err := hex.Decode(c[i:i+1], []byte(s[2*i:2*i+2])); err != nil {
			return Challenge{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidHex, s[2*i:2*i+2], 2*i)
		}
	}
	return c, nil
}

// Bytes returns a copy of the challenge as a slice.
func (c Challenge) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, c[:])
	return b
}

func (c Challenge) String() string {
	return hex.EncodeToString(c[:])
}
