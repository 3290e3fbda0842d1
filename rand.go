package argon

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomBytes returns n bytes from the system's secure random source,
// suitable for salts and secret keys.
func RandomBytes(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("argon: reading random bytes: %w", err)
	}
	return b, nil
}

// RandomBase64 returns n random bytes encoded with the standard base64
// alphabet, padded.
func RandomBase64(n uint32) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
