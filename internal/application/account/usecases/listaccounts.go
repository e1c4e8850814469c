package usecases

import (
	"context"

	"tally/internal/domain/account"
	"tally/internal/shared/logger"
)

type ListAccountsResult struct {
	Accounts []*account.Account
}

// ListAccountsUseCase returns all accounts, digests excluded.
type ListAccountsUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewListAccountsUseCase(accountRepo account.Repository, log logger.Interface) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
		logger:      log,
	}
}

func (uc *ListAccountsUseCase) Execute(ctx context.Context) (*ListAccountsResult, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list accounts", "error", err)
		return nil, err
	}

	return &ListAccountsResult{Accounts: accounts}, nil
}
