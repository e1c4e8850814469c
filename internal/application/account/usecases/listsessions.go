package usecases

import (
	"context"

	"tally/internal/domain/account"
	"tally/internal/shared/logger"
)

type ListSessionsResult struct {
	// SessionsByAccount groups the ACTIVE sessions by account public id.
	SessionsByAccount map[string][]*account.Session
}

// ListSessionsUseCase gives administrators the current session inventory.
type ListSessionsUseCase struct {
	sessionRepo account.SessionRepository
	logger      logger.Interface
}

func NewListSessionsUseCase(sessionRepo account.SessionRepository, log logger.Interface) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context) (*ListSessionsResult, error) {
	sessions, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active sessions", "error", err)
		return nil, err
	}

	grouped := make(map[string][]*account.Session)
	for _, session := range sessions {
		grouped[session.AccountID] = append(grouped[session.AccountID], session)
	}

	return &ListSessionsResult{SessionsByAccount: grouped}, nil
}
