package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "hans_m", NormalizeUsername("  Hans_M "))
	assert.Equal(t, "abc123", NormalizeUsername("ABC123"))
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"hans_m", true},
		{" Hans_M ", true}, // normalized before matching
		{"user123", true},
		{"", false},
		{"with space", false},
		{"dashes-no", false},
		{"ümlaut", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Password123", true},
		{"too short", "Pw1", false},
		{"no uppercase", "password123", false},
		{"no lowercase", "PASSWORD123", false},
		{"no digit", "PasswordABC", false},
		{"contains whitespace", "Password 123", false},
		{"exactly eight", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestGinBindingValidators(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type registerForm struct {
		Username string `json:"username" binding:"required,username"`
		Password string `json:"password" binding:"required,password"`
	}

	assert.NoError(t, v.Struct(registerForm{Username: "hans_m", Password: "Password123"}))
	// Normalization happens before matching, so binding accepts what the
	// use case would repair.
	assert.NoError(t, v.Struct(registerForm{Username: " Hans_M ", Password: "Password123"}))

	err := v.Struct(registerForm{Username: "bad name", Password: "Password123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	err = v.Struct(registerForm{Username: "hans_m", Password: "weak"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
