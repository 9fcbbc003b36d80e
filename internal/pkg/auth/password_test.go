package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("23GPTC0042")
	require.NoError(t, err)
	assert.NotEqual(t, "23GPTC0042", hash)

	assert.True(t, CheckPassword(hash, "23GPTC0042"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "23GPTC0042"))
}
