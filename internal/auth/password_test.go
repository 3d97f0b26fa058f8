package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.Error(t, ComparePassword(hash, "wrongpass"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
