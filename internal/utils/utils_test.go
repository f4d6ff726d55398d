package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	hashed, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hashed)
	assert.True(t, CheckPassword(hashed, "admin123"))
	assert.False(t, CheckPassword(hashed, "admin124"))
	assert.False(t, CheckPassword("", "admin123"))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected %q", r)
	}

	code, err = GenerateCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestReferenceCode(t *testing.T) {
	ref, err := ReferenceCode("CL", 2, 4)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CL-[A-Z2-9]{4}-[A-Z2-9]{4}$`), ref)

	ref, err = ReferenceCode("", 1, 5)
	require.NoError(t, err)
	assert.Len(t, ref, 5)
}

func TestSHA256HexAndETag(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
	assert.Equal(t, `"e3b0c44298fc1c149afbf4c8996fb924"`, ETag(nil))
}
