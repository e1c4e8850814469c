// Package usecases implements push notification fan-out. Keys live on
// ACTIVE sessions, so a logged-out device stops receiving pushes without
// any bookkeeping here.
package usecases

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"tally/internal/domain/account"
	"tally/internal/domain/user"
	"tally/internal/infrastructure/push"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// sanitizer strips all markup from notification content before it leaves
// the system.
var sanitizer = bluemonday.StrictPolicy()

type NotifyCommand struct {
	Title string
	Body  string
	Sound bool
	Route string
}

func (cmd *NotifyCommand) sanitized() (push.Notification, error) {
	title := strings.TrimSpace(sanitizer.Sanitize(cmd.Title))
	body := strings.TrimSpace(sanitizer.Sanitize(cmd.Body))
	if title == "" {
		return push.Notification{}, apperrors.NewValidationError("notification title is required")
	}

	route := cmd.Route
	if route == "" {
		route = "/home"
	}

	return push.Notification{Title: title, Body: body, Sound: cmd.Sound, Route: route}, nil
}

// dispatcher fans a notification out to a set of push keys. Delivery
// failures are logged per key and never fail the batch.
type dispatcher struct {
	sessionRepo account.SessionRepository
	sender      push.Sender
	logger      logger.Interface
}

// NotifyResult reports how many keys the notification was dispatched to.
type NotifyResult struct {
	Dispatched int
}

func (d *dispatcher) sendToAccounts(ctx context.Context, accountIDs []string, notification push.Notification) (*NotifyResult, error) {
	keys, err := d.sessionRepo.ActivePushKeys(ctx, accountIDs)
	if err != nil {
		d.logger.Errorw("failed to collect push keys", "error", err)
		return nil, err
	}

	dispatched := 0
	for _, key := range keys {
		if err := d.sender.Send(ctx, key, notification); err != nil {
			d.logger.Warnw("push delivery failed", "error", err)
			continue
		}
		dispatched++
	}

	d.logger.Infow("notification dispatched",
		"title", notification.Title,
		"keys", len(keys),
		"delivered", dispatched)
	return &NotifyResult{Dispatched: dispatched}, nil
}

type NotifyAccountCommand struct {
	NotifyCommand
	AccountID string
}

// NotifyAccountUseCase pushes to every active device of one account.
type NotifyAccountUseCase struct {
	dispatcher
}

func NewNotifyAccountUseCase(sessionRepo account.SessionRepository, sender push.Sender, log logger.Interface) *NotifyAccountUseCase {
	return &NotifyAccountUseCase{dispatcher{sessionRepo: sessionRepo, sender: sender, logger: log}}
}

func (uc *NotifyAccountUseCase) Execute(ctx context.Context, cmd NotifyAccountCommand) (*NotifyResult, error) {
	if cmd.AccountID == "" {
		return nil, apperrors.NewBadRequestError("account id is required")
	}
	notification, err := cmd.sanitized()
	if err != nil {
		return nil, err
	}

	return uc.sendToAccounts(ctx, []string{cmd.AccountID}, notification)
}

type NotifyUserCommand struct {
	NotifyCommand
	UserID string
}

// NotifyUserUseCase pushes to every account linked to a user profile.
type NotifyUserUseCase struct {
	dispatcher
	accountRepo account.Repository
}

func NewNotifyUserUseCase(
	sessionRepo account.SessionRepository,
	accountRepo account.Repository,
	sender push.Sender,
	log logger.Interface,
) *NotifyUserUseCase {
	return &NotifyUserUseCase{
		dispatcher:  dispatcher{sessionRepo: sessionRepo, sender: sender, logger: log},
		accountRepo: accountRepo,
	}
}

func (uc *NotifyUserUseCase) Execute(ctx context.Context, cmd NotifyUserCommand) (*NotifyResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewBadRequestError("user id is required")
	}
	notification, err := cmd.sanitized()
	if err != nil {
		return nil, err
	}

	accountIDs, err := uc.accountIDsForUsers(ctx, map[string]bool{cmd.UserID: true})
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return &NotifyResult{}, nil
	}

	return uc.sendToAccounts(ctx, accountIDs, notification)
}

func (uc *NotifyUserUseCase) accountIDsForUsers(ctx context.Context, userIDs map[string]bool) ([]string, error) {
	return accountIDsForUsers(ctx, uc.accountRepo, userIDs)
}

type NotifyAllUsersCommand struct {
	NotifyCommand
}

// NotifyAllUsersUseCase broadcasts to every active session.
type NotifyAllUsersUseCase struct {
	dispatcher
}

func NewNotifyAllUsersUseCase(sessionRepo account.SessionRepository, sender push.Sender, log logger.Interface) *NotifyAllUsersUseCase {
	return &NotifyAllUsersUseCase{dispatcher{sessionRepo: sessionRepo, sender: sender, logger: log}}
}

func (uc *NotifyAllUsersUseCase) Execute(ctx context.Context, cmd NotifyAllUsersCommand) (*NotifyResult, error) {
	notification, err := cmd.sanitized()
	if err != nil {
		return nil, err
	}

	return uc.sendToAccounts(ctx, nil, notification)
}

type NotifyAdminsCommand struct {
	NotifyCommand
}

// NotifyAdminsUseCase pushes to every account whose linked profile carries
// the admin role.
type NotifyAdminsUseCase struct {
	dispatcher
	accountRepo account.Repository
	userRepo    user.Repository
}

func NewNotifyAdminsUseCase(
	sessionRepo account.SessionRepository,
	accountRepo account.Repository,
	userRepo user.Repository,
	sender push.Sender,
	log logger.Interface,
) *NotifyAdminsUseCase {
	return &NotifyAdminsUseCase{
		dispatcher:  dispatcher{sessionRepo: sessionRepo, sender: sender, logger: log},
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

func (uc *NotifyAdminsUseCase) Execute(ctx context.Context, cmd NotifyAdminsCommand) (*NotifyResult, error) {
	notification, err := cmd.sanitized()
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	adminIDs := make(map[string]bool)
	for _, u := range users {
		if u.Permissions == authorization.RoleAdmin {
			adminIDs[u.UserID] = true
		}
	}
	if len(adminIDs) == 0 {
		return &NotifyResult{}, nil
	}

	accountIDs, err := accountIDsForUsers(ctx, uc.accountRepo, adminIDs)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return &NotifyResult{}, nil
	}

	return uc.sendToAccounts(ctx, accountIDs, notification)
}

// accountIDsForUsers resolves the accounts linked to any of the given
// user ids.
func accountIDsForUsers(ctx context.Context, accountRepo account.Repository, userIDs map[string]bool) ([]string, error) {
	accounts, err := accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var accountIDs []string
	for _, acc := range accounts {
		if acc.LinkedUserID != nil && userIDs[*acc.LinkedUserID] {
			accountIDs = append(accountIDs, acc.PublicID)
		}
	}
	return accountIDs, nil
}
