package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession("acc-1", "origin-1", "10.0.0.5", "mobile", "chrome")
	require.NoError(t, err)

	assert.NotEmpty(t, s.TokenID)
	assert.Equal(t, "acc-1", s.AccountID)
	assert.Equal(t, "origin-1", s.OriginID)
	assert.True(t, s.IsActive())
	assert.Nil(t, s.InvalidatedAt)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewSession_FreshTokenIDPerLogin(t *testing.T) {
	s1, err := NewSession("acc-1", "origin-1", "", "", "")
	require.NoError(t, err)
	s2, err := NewSession("acc-1", "origin-1", "", "", "")
	require.NoError(t, err)

	assert.NotEqual(t, s1.TokenID, s2.TokenID)
}

func TestNewSession_RequiredFields(t *testing.T) {
	_, err := NewSession("", "origin-1", "", "", "")
	assert.Error(t, err)

	_, err = NewSession("acc-1", "", "", "", "")
	assert.Error(t, err)
}

func TestSession_Invalidate(t *testing.T) {
	s, err := NewSession("acc-1", "origin-1", "", "", "")
	require.NoError(t, err)

	s.Invalidate()
	assert.False(t, s.IsActive())
	require.NotNil(t, s.InvalidatedAt)

	// Invalidation is terminal and idempotent; the stamp is set exactly once.
	first := *s.InvalidatedAt
	s.Invalidate()
	assert.Equal(t, first, *s.InvalidatedAt)
}

func TestNewOriginID_Unique(t *testing.T) {
	assert.NotEqual(t, NewOriginID(), NewOriginID())
}
