package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

func SHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return `"` + SHA256Hex(body)[:32] + `"`
}
