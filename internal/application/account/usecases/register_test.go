package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/domain/account"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func TestRegisterAccountUseCase_Success(t *testing.T) {
	accountRepo := new(mockAccountRepository)

	var created *account.Account
	accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Account")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*account.Account)
		}).Return(nil)

	uc := NewRegisterAccountUseCase(accountRepo, newTestHasher(), logger.NewLogger())

	result, err := uc.Execute(context.Background(), RegisterAccountCommand{
		Username: "  Hans_M ",
		Password: "Sommer2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "hans_m", result.Account.Username)
	assert.Equal(t, created, result.Account)
	assert.NotEmpty(t, result.Account.PublicID)
}

func TestRegisterAccountUseCase_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"username with spaces inside", "hans m", "Sommer2024"},
		{"username with symbols", "hans!", "Sommer2024"},
		{"empty username", "", "Sommer2024"},
		{"password too short", "hans_m", "Ab1"},
		{"password without digit", "hans_m", "Sommertag"},
		{"password without upper case", "hans_m", "sommer2024"},
		{"password with whitespace", "hans_m", "Sommer 2024"},
	}

	accountRepo := new(mockAccountRepository)
	uc := NewRegisterAccountUseCase(accountRepo, newTestHasher(), logger.NewLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), RegisterAccountCommand{
				Username: tt.username,
				Password: tt.password,
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}

	accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterAccountUseCase_DuplicateUsername(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Account")).
		Return(apperrors.NewConflictError("username is already taken"))

	uc := NewRegisterAccountUseCase(accountRepo, newTestHasher(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), RegisterAccountCommand{
		Username: "hans_m",
		Password: "Sommer2024",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}
