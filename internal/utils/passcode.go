package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PassCodePrefix is the human-readable prefix on every gate pass
// code. Codes look like "SC-4821": short enough to read out at the
// gate, not meant to be cryptographically secure.
const PassCodePrefix = "SC-"

// NewPassCode returns a candidate gate pass code. Uniqueness is not
// guaranteed here; the caller inserts and retries on a duplicate-key
// collision.
func NewPassCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", PassCodePrefix, n.Int64()), nil
}
