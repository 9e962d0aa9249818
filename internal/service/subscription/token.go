package subscription

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tokenLength   = 25
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// generateToken produces a confirmation token: 25 characters drawn uniformly
// from the alphanumeric alphabet (~149 bits of entropy). Tokens grant
// confirmation rights to whoever holds them, so they must be unguessable.
func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	token := make([]byte, tokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		token[i] = tokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
