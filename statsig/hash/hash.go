// Package hash implements the name hashing scheme used to key entries in the
// initialize response.
package hash

import (
	"crypto/sha256"
	"encoding/base64"
)

// Sha256Base64 returns the base64 encoding of the SHA-256 digest of name.
// Gates and dynamic configs in the initialize payload are keyed by this value.
func Sha256Base64(name string) string {
	digest := sha256.Sum256([]byte(name))
	return base64.StdEncoding.EncodeToString(digest[:])
}
