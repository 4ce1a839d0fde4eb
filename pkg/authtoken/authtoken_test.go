package authtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", "map-dress", time.Hour)

	token, err := m.Issue("8d3c2f1e-0000-4000-8000-000000000001", "ADMIN")
	require.NoError(t, err)

	claims, err := m.ParseHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "8d3c2f1e-0000-4000-8000-000000000001", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "map-dress", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	m := NewManager("secret", "map-dress", time.Hour)
	token, err := m.Issue("user-1", "USER")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewManager("other", "map-dress", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewManager("secret", "someone-else", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewManager("secret", "map-dress", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty header", func(t *testing.T) {
		_, err := m.ParseHeader("Bearer   ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseHeader("Bearer not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
