package usecases

import (
	"context"
	"fmt"

	"tally/internal/application/account/helpers"
	"tally/internal/domain/account"
	"tally/internal/infrastructure/auth"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type RefreshTokenCommand struct {
	// AccountID and TokenID come from the already verified refresh token.
	AccountID string
	TokenID   string
}

type RefreshTokenResult struct {
	AccessToken string
	ExpiresIn   int64
}

// RefreshTokenUseCase exchanges a refresh token for a fresh access token,
// provided the session behind the token is still ACTIVE. The role claim is
// re-resolved on every refresh, so permission changes propagate within one
// access token lifetime.
type RefreshTokenUseCase struct {
	sessionRepo  account.SessionRepository
	issuer       *auth.TokenIssuer
	roleResolver *helpers.RoleResolver
	logger       logger.Interface
}

func NewRefreshTokenUseCase(
	sessionRepo account.SessionRepository,
	issuer *auth.TokenIssuer,
	roleResolver *helpers.RoleResolver,
	log logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		sessionRepo:  sessionRepo,
		issuer:       issuer,
		roleResolver: roleResolver,
		logger:       log,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	_, err := uc.sessionRepo.GetActiveByTokenID(ctx, cmd.AccountID, cmd.TokenID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			// The JWT may still be inside its lifetime; a superseded or
			// terminated session refuses refresh regardless.
			return nil, apperrors.NewSessionInvalidatedError("session has been invalidated")
		}
		uc.logger.Errorw("failed to look up session", "token_id", cmd.TokenID, "error", err)
		return nil, err
	}

	role, err := uc.roleResolver.Resolve(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to resolve role", "account_id", cmd.AccountID, "error", err)
		return nil, err
	}

	accessToken, err := uc.issuer.IssueAccessToken(cmd.AccountID, role)
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "account_id", cmd.AccountID, "error", err)
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &RefreshTokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.issuer.AccessExpMinutes()) * 60,
	}, nil
}
