package random

import (
	"crypto/rand"
	"math/big"
)

// IDAlphabet is the character set used for user IDs
const IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Random generates the random parts of identifiers
type Random interface {
	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String generates a random string of the given length from the given
// alphabet. It panics if the system entropy source fails.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}

	n := big.NewInt(int64(len(alphabet)))
	result := make([]byte, length)
	for i := range result {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			panic("random: entropy source failed: " + err.Error())
		}
		result[i] = alphabet[idx.Int64()]
	}
	return string(result)
}
