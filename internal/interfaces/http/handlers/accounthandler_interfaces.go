package handlers

import (
	"context"

	"tally/internal/application/account/usecases"
)

// Use case interfaces for AccountHandler - enables unit testing with mocks.

type registerAccountUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterAccountCommand) (*usecases.RegisterAccountResult, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.LogoutCommand) error
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type linkUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.LinkUserCommand) error
}

type listAccountsUseCase interface {
	Execute(ctx context.Context) (*usecases.ListAccountsResult, error)
}

type attachPushKeyUseCase interface {
	Execute(ctx context.Context, cmd usecases.AttachPushKeyCommand) error
}
