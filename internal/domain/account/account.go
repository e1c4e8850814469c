package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/shared/biztime"
)

// Account is the credential identity. It is never hard-deleted; only the
// linked user profile has an independent, deletable lifecycle.
type Account struct {
	PublicID     string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LinkedUserID *string
}

// PasswordHasher is the opaque hashing capability consumed by the account
// domain. The concrete implementation lives in infrastructure.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// NewAccount creates an account with a fresh public id. The username must
// already be normalized and the password hash computed by the caller.
func NewAccount(username, passwordHash string) (*Account, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	return &Account{
		PublicID:     uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    biztime.NowUTC(),
	}, nil
}

// VerifyPassword checks the given password against the stored digest.
func (a *Account) VerifyPassword(password string, hasher PasswordHasher) error {
	if a.PasswordHash == "" {
		return fmt.Errorf("account has no password digest loaded")
	}
	return hasher.Verify(password, a.PasswordHash)
}

// Repository defines the credential store contract for accounts.
type Repository interface {
	// Create persists a new account. Returns a conflict error if the
	// username is already taken.
	Create(ctx context.Context, account *Account) error

	// GetByUsername returns all accounts with the given normalized
	// username, password digest included. Empty slice if none.
	GetByUsername(ctx context.Context, username string) ([]*Account, error)

	// GetByPublicID returns the account without its password digest.
	GetByPublicID(ctx context.Context, publicID string) (*Account, error)

	// List returns all accounts without password digests.
	List(ctx context.Context) ([]*Account, error)

	// UpdatePassword replaces the password digest of an account.
	UpdatePassword(ctx context.Context, publicID, passwordHash string) error

	// LinkUser sets the linked user id on an account. At most one user may
	// be linked at a time; the relation is stored on the account side.
	LinkUser(ctx context.Context, publicID, userID string) error
}
