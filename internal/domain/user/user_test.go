package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/shared/authorization"
)

func TestNewName_Normalization(t *testing.T) {
	n, err := NewName("  hans  ", "MÜLLER")
	require.NoError(t, err)

	assert.Equal(t, "Hans", n.First())
	assert.Equal(t, "Müller", n.Last())
	assert.Equal(t, "Hans Müller", n.Full())
}

func TestNewName_Invalid(t *testing.T) {
	_, err := NewName("", "Müller")
	assert.Error(t, err)

	_, err = NewName("Hans<script>", "Müller")
	assert.Error(t, err)
}

func TestNewUser(t *testing.T) {
	name, err := NewName("Hans", "Müller")
	require.NoError(t, err)

	u, err := NewUser(name, false, PriceRankingRegular, authorization.RoleUser)
	require.NoError(t, err)

	assert.NotEmpty(t, u.UserID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, PriceRankingRegular, u.PriceRanking)
}

func TestNewUser_Invalid(t *testing.T) {
	name, err := NewName("Hans", "Müller")
	require.NoError(t, err)

	_, err = NewUser(name, false, PriceRanking("gold"), authorization.RoleUser)
	assert.Error(t, err)

	// "none" is a derived claim for unlinked accounts, never a stored role.
	_, err = NewUser(name, false, PriceRankingRegular, authorization.RoleNone)
	assert.Error(t, err)
}
