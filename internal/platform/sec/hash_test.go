// Copyright (c) 2026 Clipstream. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies a hash validates against its plaintext
and rejects everything else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// bcrypt output must never equal the plaintext
	assert.NotEqual(t, "secret", hash)

	assert.True(t, sec.CheckPasswordHash("secret", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies two hashes of the same plaintext differ.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("secret")
	require.NoError(t, err)

	second, err := sec.HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("secret", first))
	assert.True(t, sec.CheckPasswordHash("secret", second))
}

/*
TestCheckPasswordHash_InvalidHash verifies mismatches return false, not errors.
*/
func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("secret", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("secret", ""))
}
