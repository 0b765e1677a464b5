package service

import (
	"github.com/parfumdelite/backend/internal/models"
)

// AdminAction is an administrative mutation kind subject to authorization.
type AdminAction int

const (
	ActionView AdminAction = iota
	ActionCreate
	ActionUpdateRole
	ActionDelete
)

// Authorize is the single decision point for administrative account
// mutations. Every privilege-sensitive code path calls it before touching
// the store.
//
// For ActionCreate target is the prospective account carrying the requested
// privilege flags. For ActionUpdateRole update carries the requested flag
// changes. It returns nil to allow, models.ErrForbidden to deny.
func Authorize(actor *models.User, action AdminAction, target *models.User, update *models.RoleUpdate) error {
	// super admin accounts are permanent, nobody deletes them
	if action == ActionDelete && target != nil && target.IsSuperAdmin {
		return models.ErrForbidden
	}

	if actor == nil || !actor.IsAdmin {
		return models.ErrForbidden
	}

	switch action {
	case ActionCreate:
		if target != nil && target.IsSuperAdmin && !actor.IsSuperAdmin {
			return models.ErrForbidden
		}
	case ActionUpdateRole:
		// touching an existing super admin, or granting/revoking the
		// super admin flag, takes a super admin actor
		if target != nil && target.IsSuperAdmin && !actor.IsSuperAdmin {
			return models.ErrForbidden
		}
		if update != nil && update.TouchesSuperAdmin() && !actor.IsSuperAdmin {
			return models.ErrForbidden
		}
	}

	return nil
}
