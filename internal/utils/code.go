package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Letters and digits that survive being read out over the phone: no 0/O or 1/I.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns n random characters from codeAlphabet.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	limit := big.NewInt(int64(len(codeAlphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// ReferenceCode returns a customer-facing reference such as "CL-7KQM-2XWP":
// prefix followed by groups blocks of size random characters.
func ReferenceCode(prefix string, groups, size int) (string, error) {
	parts := make([]string, 0, groups+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for i := 0; i < groups; i++ {
		block, err := GenerateCode(size)
		if err != nil {
			return "", err
		}
		parts = append(parts, block)
	}
	return strings.Join(parts, "-"), nil
}
