package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)

	token, exp, err := m.Generate("3a9f1c2e-0000-4000-8000-000000000001")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "3a9f1c2e-0000-4000-8000-000000000001", claims.UserID)
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	other := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, _, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123456789abcdef", -time.Minute)

	token, _, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}
