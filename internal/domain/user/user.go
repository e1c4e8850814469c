// Package user holds the user profile entity. Users have a lifecycle
// independent from accounts: an account may exist without a profile (its
// role claim is then "none"), and profiles are the only deletable identity.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/shared/authorization"
	"tally/internal/shared/biztime"
)

// PriceRanking decides which price column applies to the user's purchases.
type PriceRanking string

const (
	PriceRankingRegular PriceRanking = "regular"
	PriceRankingMember  PriceRanking = "member"
	PriceRankingGuest   PriceRanking = "guest"
)

func (p PriceRanking) IsValid() bool {
	return p == PriceRankingRegular || p == PriceRankingMember || p == PriceRankingGuest
}

// User is the profile entity linked to at most one account.
type User struct {
	UserID             string
	Name               *Name
	CreatedAt          time.Time
	IsTemporary        bool
	PriceRanking       PriceRanking
	Permissions        authorization.Role
	ProfilePicturePath *string
}

// NewUser creates a user profile with a fresh id.
func NewUser(name *Name, isTemporary bool, priceRanking PriceRanking, permissions authorization.Role) (*User, error) {
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if !priceRanking.IsValid() {
		return nil, fmt.Errorf("invalid price ranking: %s", priceRanking)
	}
	if permissions != authorization.RoleAdmin && permissions != authorization.RoleUser {
		return nil, fmt.Errorf("permissions must be admin or user")
	}

	return &User{
		UserID:       uuid.NewString(),
		Name:         name,
		CreatedAt:    biztime.NowUTC(),
		IsTemporary:  isTemporary,
		PriceRanking: priceRanking,
		Permissions:  permissions,
	}, nil
}

// Repository defines the credential store contract for user profiles.
type Repository interface {
	// Create persists a new user profile.
	Create(ctx context.Context, user *User) error

	// GetByID returns the user with the given id.
	GetByID(ctx context.Context, userID string) (*User, error)

	// GetByLinkedAccountID resolves the user linked to an account, used to
	// resolve role claims. Not-found means the account is unlinked.
	GetByLinkedAccountID(ctx context.Context, accountPublicID string) (*User, error)

	// List returns all user profiles.
	List(ctx context.Context) ([]*User, error)

	// Delete removes a user profile permanently.
	Delete(ctx context.Context, userID string) error

	// UpdateProfilePicturePath stores the path of an uploaded profile
	// picture. Processing of the image itself is out of scope.
	UpdateProfilePicturePath(ctx context.Context, userID, path string) error
}
