package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_SixDigits(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[1-9]\d{5}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code) // never shorter, never zero-padded
	}
}

func TestHashOTP_DeterministicHexDigest(t *testing.T) {
	first := HashOTP("123456")
	assert.Equal(t, first, HashOTP("123456"))
	assert.Regexp(t, `^[0-9a-f]{64}$`, first)
	assert.NotEqual(t, first, HashOTP("123457"))
}

func TestVerifyOTP(t *testing.T) {
	hashed := HashOTP("654321")
	assert.True(t, VerifyOTP("654321", hashed))
	assert.False(t, VerifyOTP("123456", hashed))
	assert.False(t, VerifyOTP("654321", "not-a-digest"))
}
