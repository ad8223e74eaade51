package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// verifierCharset is the unreserved character set RFC 7636 permits in a
// code verifier.
const verifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// verifierLength is the maximum length RFC 7636 allows.
const verifierLength = 128

// GenerateVerifier returns a random PKCE code verifier.
func GenerateVerifier() (string, error) {
	buf := make([]byte, verifierLength)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating code verifier: %w", err)
	}

	for i, b := range buf {
		buf[i] = verifierCharset[int(b)%len(verifierCharset)]
	}

	return string(buf), nil
}

// Challenge derives the S256 code challenge for a verifier: the
// unpadded base64url encoding of its SHA-256 digest.
func Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
