package service

import (
	"context"
	"errors"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts a new user
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByVerificationToken returns user by email verification token
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	// UpdateUser replaces the stored user document
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser removes user by id
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]models.User, error)
	// GetUsersByIDs returns users keyed by id
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

// CreateUserRequest is admin-initiated account creation input
type CreateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

// AdminService implements administrative account management
type AdminService struct {
	users  UserRepository
	orders OrderRepository
}

// NewAdminService creates new AdminService instance
func NewAdminService(users UserRepository, orders OrderRepository) *AdminService {
	return &AdminService{users: users, orders: orders}
}

// ListUsers returns all accounts for the admin panel.
func (as *AdminService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := Authorize(actor, ActionView, nil, nil); err != nil {
		return nil, err
	}

	return as.users.ListUsers(ctx)
}

// CreateUser creates an account on behalf of actor. Creation of a super
// admin account by a non super admin is denied before anything is
// persisted.
func (as *AdminService) CreateUser(ctx context.Context, actor *models.User, req CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" {
		return nil, models.ErrValidation
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		IsAdmin:      req.IsAdmin,
		IsSuperAdmin: req.IsSuperAdmin,
	}
	// super admin implies admin
	if user.IsSuperAdmin {
		user.IsAdmin = true
	}

	if err := Authorize(actor, ActionCreate, user, nil); err != nil {
		return nil, err
	}

	if err := security.ValidatePassword(req.Password); err != nil {
		return nil, errors.Join(models.ErrValidation, err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, models.ErrInternalError
	}
	user.PasswordHash = hash

	return as.users.CreateUser(ctx, user)
}

// UpdateUserRole applies privilege flag changes to the target account.
func (as *AdminService) UpdateUserRole(ctx context.Context, actor *models.User, targetID primitive.ObjectID, update models.RoleUpdate) (*models.User, error) {
	target, err := as.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, ActionUpdateRole, target, &update); err != nil {
		return nil, err
	}

	if update.IsAdmin != nil {
		target.IsAdmin = *update.IsAdmin
	}
	if update.IsSuperAdmin != nil {
		target.IsSuperAdmin = *update.IsSuperAdmin
	}
	if update.IsSuspended != nil {
		target.IsSuspended = *update.IsSuspended
	}

	// super admin implies admin, the flag is not independently clearable
	if target.IsSuperAdmin {
		target.IsAdmin = true
	}

	if err := as.users.UpdateUser(ctx, target); err != nil {
		return nil, err
	}

	return target, nil
}

// DeleteUser removes the target account. Super admin accounts are
// permanent regardless of actor.
func (as *AdminService) DeleteUser(ctx context.Context, actor *models.User, targetID primitive.ObjectID) error {
	target, err := as.users.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}

	if err := Authorize(actor, ActionDelete, target, nil); err != nil {
		return err
	}

	return as.users.DeleteUser(ctx, targetID)
}

// ActiveDeliveries returns orders in the delivery pipeline with driver and
// customer identity resolved for display.
func (as *AdminService) ActiveDeliveries(ctx context.Context, actor *models.User) ([]models.ActiveDelivery, error) {
	if err := Authorize(actor, ActionView, nil, nil); err != nil {
		return nil, err
	}

	orders, err := as.orders.ActiveDeliveries(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(orders)*2)
	for _, o := range orders {
		ids = append(ids, o.UserID)
		if o.DriverID != nil {
			ids = append(ids, *o.DriverID)
		}
	}

	parties, err := as.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := make([]models.ActiveDelivery, 0, len(orders))
	for _, o := range orders {
		d := models.ActiveDelivery{Order: o}
		if u, ok := parties[o.UserID]; ok {
			d.Customer = &models.Party{ID: u.ID, Username: u.Username, Email: u.Email}
		}
		if o.DriverID != nil {
			if u, ok := parties[*o.DriverID]; ok {
				d.Driver = &models.Party{ID: u.ID, Username: u.Username, Email: u.Email}
			}
		}
		view = append(view, d)
	}

	return view, nil
}
