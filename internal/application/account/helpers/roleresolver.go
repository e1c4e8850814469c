// Package helpers holds logic shared by several account use cases.
package helpers

import (
	"context"

	"tally/internal/domain/user"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
)

// RoleResolver derives the role claim of an account from its linked user
// profile. Roles live on user profiles, never on accounts; an unlinked
// account carries the "none" role.
type RoleResolver struct {
	userRepo user.Repository
}

// NewRoleResolver creates a new role resolver
func NewRoleResolver(userRepo user.Repository) *RoleResolver {
	return &RoleResolver{userRepo: userRepo}
}

// Resolve returns the current role of the account. It is called freshly
// on every login and refresh so a deleted or relinked profile takes
// effect no later than the next token mint.
func (r *RoleResolver) Resolve(ctx context.Context, accountPublicID string) (authorization.Role, error) {
	linked, err := r.userRepo.GetByLinkedAccountID(ctx, accountPublicID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return authorization.RoleNone, nil
		}
		return authorization.RoleNone, err
	}

	return linked.Permissions, nil
}
