package service

import (
	"context"
	"errors"

	"github.com/parfumdelite/backend/internal/models"
)

// PromoteSuperAdmin grants the account with the given email both admin
// flags. It is called once at startup for the configured bootstrap email
// and is idempotent. A missing account is not an error, the promotion
// simply reports false.
func PromoteSuperAdmin(ctx context.Context, users UserRepository, email string) (bool, error) {
	user, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return false, nil
		}
		return false, err
	}

	if user.IsAdmin && user.IsSuperAdmin {
		return true, nil
	}

	user.IsAdmin = true
	user.IsSuperAdmin = true

	if err := users.UpdateUser(ctx, user); err != nil {
		return false, err
	}

	return true, nil
}
