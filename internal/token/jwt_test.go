package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "parlo/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "parlo-test")

	access, err := m.Generate(42, time.Hour)
	require.NoError(t, err)

	userID, err := m.UserIDFromToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("secret", "parlo-test")

	access, err := m.Generate(42, -time.Minute)
	require.NoError(t, err)

	_, err = m.UserIDFromToken(access)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestWrongSigningKey(t *testing.T) {
	access, err := NewManager("secret-a", "parlo-test").Generate(42, time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret-b", "parlo-test").UserIDFromToken(access)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestGarbageToken(t *testing.T) {
	m := NewManager("secret", "parlo-test")
	_, err := m.UserIDFromToken("not.a.jwt")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
