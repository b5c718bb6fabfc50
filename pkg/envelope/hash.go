package envelope

import (
	"crypto/sha512"
	"encoding/hex"
)

// SHA512 returns the hex encoded SHA-512 digest of in.
func SHA512(in []byte) string {
	sum := sha512.Sum512(in)
	return hex.EncodeToString(sum[:])
}

// Digest returns the SHA-512 digest of the canonical form of raw JSON.
// Two envelopes with the same content and different key order share a digest.
func Digest(raw []byte) (string, error) {
	canonical, err := CanonicalizeRaw(raw)
	if err != nil {
		return "", err
	}
	return SHA512(canonical), nil
}
