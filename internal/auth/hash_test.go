package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	first := HashPassword("pw123")
	second := HashPassword("pw123")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestHashPasswordKnownVector(t *testing.T) {
	// sha256("pw123") in lowercase hex
	assert.Equal(t,
		"23d47445adfb8991789b459b6ba1b974d727d310aa9d80b7c2875b9430c0ba25",
		HashPassword("pw123"))
}

func TestCheckPassword(t *testing.T) {
	digest := HashPassword("secret")
	assert.True(t, CheckPassword(digest, "secret"))
	assert.False(t, CheckPassword(digest, "Secret"))
	assert.False(t, CheckPassword(digest, ""))
}
