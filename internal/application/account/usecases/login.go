package usecases

import (
	"context"
	"fmt"

	"tally/internal/application/account/helpers"
	"tally/internal/domain/account"
	"tally/internal/infrastructure/auth"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

// TransactionManager runs a function inside one store transaction.
// Satisfied by db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LoginCommand struct {
	Username string
	Password string
	// OriginID is echoed back by a returning device. Empty means a
	// first-time device, which gets a fresh one.
	OriginID  string
	IPAddress string
	Device    string
	Browser   string
}

type LoginResult struct {
	Account  *account.Account
	Tokens   *auth.TokenPair
	OriginID string
}

// LoginUseCase authenticates an account and opens a session for the
// calling device. Any active session of the same origin is superseded in
// the same transaction that inserts the new one.
type LoginUseCase struct {
	accountRepo  account.Repository
	sessionRepo  account.SessionRepository
	hasher       account.PasswordHasher
	issuer       *auth.TokenIssuer
	roleResolver *helpers.RoleResolver
	txManager    TransactionManager
	logger       logger.Interface
}

func NewLoginUseCase(
	accountRepo account.Repository,
	sessionRepo account.SessionRepository,
	hasher account.PasswordHasher,
	issuer *auth.TokenIssuer,
	roleResolver *helpers.RoleResolver,
	txManager TransactionManager,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		hasher:       hasher,
		issuer:       issuer,
		roleResolver: roleResolver,
		txManager:    txManager,
		logger:       log,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username := utils.NormalizeUsername(cmd.Username)

	candidates, err := uc.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to look up account", "error", err)
		return nil, err
	}

	// The same generic message for unknown username and wrong password,
	// so the response does not reveal which usernames exist.
	matched := uc.matchPassword(candidates, cmd.Password)
	if matched == nil {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	role, err := uc.roleResolver.Resolve(ctx, matched.PublicID)
	if err != nil {
		uc.logger.Errorw("failed to resolve role", "account_id", matched.PublicID, "error", err)
		return nil, err
	}

	originID := cmd.OriginID
	if originID == "" {
		originID = account.NewOriginID()
	}

	session, err := account.NewSession(matched.PublicID, originID, cmd.IPAddress, cmd.Device, cmd.Browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Supersede-then-insert must commit atomically so a concurrent
	// refresh never observes two ACTIVE sessions for the origin.
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.sessionRepo.InvalidateByOrigin(txCtx, matched.PublicID, originID); err != nil {
			return err
		}
		return uc.sessionRepo.Create(txCtx, session)
	})
	if err != nil {
		uc.logger.Errorw("failed to open session", "account_id", matched.PublicID, "error", err)
		return nil, err
	}

	tokens, err := uc.issuer.IssuePair(matched.PublicID, role, session.TokenID, originID)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "account_id", matched.PublicID, "error", err)
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	uc.logger.Infow("account logged in",
		"account_id", matched.PublicID,
		"origin_id", originID,
		"device", cmd.Device)

	return &LoginResult{
		Account:  matched,
		Tokens:   tokens,
		OriginID: originID,
	}, nil
}

func (uc *LoginUseCase) matchPassword(candidates []*account.Account, password string) *account.Account {
	for _, candidate := range candidates {
		if err := candidate.VerifyPassword(password, uc.hasher); err == nil {
			return candidate
		}
	}
	return nil
}
