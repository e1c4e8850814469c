package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/shared/biztime"
)

// Session represents one logged-in device or browser instance. Its
// lifecycle is a one-way street: ACTIVE -> INVALIDATED -> removed by the
// cleanup sweep. There is no suspend state and no path back.
//
// At most one ACTIVE session exists per (account, origin) pair. That is
// enforced by invalidating prior active sessions before a new one is
// created, not by a uniqueness constraint.
type Session struct {
	TokenID             string
	AccountID           string
	OriginID            string
	IPAddress           string
	Device              string
	Browser             string
	CreatedAt           time.Time
	Invalidated         bool
	InvalidatedAt       *time.Time
	PushNotificationKey *string
}

// NewSession creates an ACTIVE session with a fresh token id. originID is
// either echoed back by a returning device or freshly generated by
// NewOriginID for a first-time one.
func NewSession(accountID, originID, ipAddress, device, browser string) (*Session, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if originID == "" {
		return nil, fmt.Errorf("origin id is required")
	}

	return &Session{
		TokenID:   uuid.NewString(),
		AccountID: accountID,
		OriginID:  originID,
		IPAddress: ipAddress,
		Device:    device,
		Browser:   browser,
		CreatedAt: biztime.NowUTC(),
	}, nil
}

// NewOriginID mints an identifier for a device that did not present one.
// The client is expected to persist it and echo it on later logins; if it
// never does, every login creates an independent session lineage.
func NewOriginID() string {
	return uuid.NewString()
}

// IsActive reports whether the session can still back a token refresh.
func (s *Session) IsActive() bool {
	return !s.Invalidated
}

// Invalidate flips the session to its terminal state. Idempotent; the
// first call wins and later calls leave the original timestamp in place.
func (s *Session) Invalidate() {
	if s.Invalidated {
		return
	}
	now := biztime.NowUTC()
	s.Invalidated = true
	s.InvalidatedAt = &now
}

// SessionRepository is the durable session store. Every write is scoped by
// (accountID, originID) or tokenID, which keeps concurrent writers safe
// without in-process locking.
type SessionRepository interface {
	// Create inserts a new ACTIVE session row.
	Create(ctx context.Context, session *Session) error

	// GetActiveByTokenID returns the ACTIVE session matching both the
	// account and the token id, or a not-found error. Invalidated rows are
	// never returned.
	GetActiveByTokenID(ctx context.Context, accountID, tokenID string) (*Session, error)

	// InvalidateByOrigin flips every ACTIVE session for (account, origin)
	// to INVALIDATED and returns the number of rows affected. Zero rows is
	// success, not an error.
	InvalidateByOrigin(ctx context.Context, accountID, originID string) (int64, error)

	// InvalidateByAccount flips every ACTIVE session for the account
	// regardless of origin. Zero rows is success.
	InvalidateByAccount(ctx context.Context, accountID string) (int64, error)

	// AttachPushKey sets the push notification key on the matching ACTIVE
	// session and returns the number of rows affected.
	AttachPushKey(ctx context.Context, accountID, originID, key string) (int64, error)

	// ListActive returns all ACTIVE sessions ordered by account.
	ListActive(ctx context.Context) ([]*Session, error)

	// ListActiveByAccount returns the ACTIVE sessions of one account.
	ListActiveByAccount(ctx context.Context, accountID string) ([]*Session, error)

	// ActivePushKeys returns the non-empty push keys of ACTIVE sessions,
	// optionally restricted to a set of account ids. A nil filter means
	// all accounts.
	ActivePushKeys(ctx context.Context, accountIDs []string) ([]string, error)

	// DeleteExpired permanently removes rows invalidated before
	// invalidatedBefore, plus rows of any state created before
	// createdBefore. Returns the number of rows deleted.
	DeleteExpired(ctx context.Context, invalidatedBefore, createdBefore time.Time) (int64, error)
}
