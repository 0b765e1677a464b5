package service

import (
	"context"
	"errors"
	"time"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/security"
)

const verificationTTL = 24 * time.Hour

// TokenService issues and verifies authorization tokens
type TokenService interface {
	CreateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}

// RegisterRequest is signup input
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService implements signup, login and email verification
type AuthService struct {
	users  UserRepository
	token  TokenService
	notify Notifications
}

// NewAuthService creates new AuthService instance
func NewAuthService(users UserRepository, token TokenService, notify Notifications) *AuthService {
	return &AuthService{users: users, token: token, notify: notify}
}

// Register creates a regular account from a signup request and queues the
// verification email.
func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" {
		return nil, models.ErrValidation
	}

	if err := security.ValidatePassword(req.Password); err != nil {
		return nil, errors.Join(models.ErrValidation, err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, models.ErrInternalError
	}

	token, err := security.GenerateVerificationToken()
	if err != nil {
		return nil, models.ErrInternalError
	}
	expires := time.Now().Add(verificationTTL)

	user := &models.User{
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        hash,
		VerificationToken:   token,
		VerificationExpires: &expires,
	}

	created, err := as.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	as.notify.EnqueueVerification(created.Email, token)

	return created, nil
}

// Login checks credentials and returns a signed token. A suspended account
// cannot log in.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !security.VerifyPassword(user.PasswordHash, password) {
		return "", nil, models.ErrInvalidCredentials
	}

	if user.IsSuspended {
		return "", nil, models.ErrAccountSuspended
	}

	token, err := as.token.CreateToken(user)
	if err != nil {
		return "", nil, models.ErrInternalError
	}

	return token, user, nil
}

// VerifyEmail marks the account holding token as verified. An expired
// token is rejected.
func (as *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrValidation
	}

	user, err := as.users.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if user.VerificationExpires == nil || time.Now().After(*user.VerificationExpires) {
		return models.ErrValidation
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationExpires = nil

	return as.users.UpdateUser(ctx, user)
}
