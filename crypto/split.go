package crypto

import (
	"crypto/rand"
	"fmt"
)

// SplitSecret splits a secret into numParts XOR shares. Every part is
// required to reconstruct the secret; any subset reveals nothing.
func SplitSecret(secret []byte, numParts int) ([][]byte, error) {
	if numParts < 2 || numParts > 10 {
		return nil, fmt.Errorf("number of parts must be between 2 and 10 (got %d)", numParts)
	}

	parts := make([][]byte, 0, numParts)
	for i := 0; i < numParts-1; i++ {
		part := make([]byte, len(secret))
		if _, err := rand.Read(part); err != nil {
			return nil, fmt.Errorf("failed to generate random part: %w", err)
		}
		parts = append(parts, part)
	}

	final := make([]byte, len(secret))
	copy(final, secret)
	for _, part := range parts {
		for i := range final {
			final[i] ^= part[i]
		}
	}
	return append(parts, final), nil
}

// CombineSecrets XORs all parts back into the original secret. Parts may
// be supplied in any order but must all be present and of equal length.
func CombineSecrets(parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts supplied")
	}

	secret := make([]byte, len(parts[0]))
	copy(secret, parts[0])
	for _, part := range parts[1:] {
		if len(part) != len(secret) {
			return nil, fmt.Errorf("part length mismatch: %d != %d", len(part), len(secret))
		}
		for i := range secret {
			secret[i] ^= part[i]
		}
	}
	return secret, nil
}
