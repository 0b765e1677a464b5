package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/service"
)

// AuthService is interface for signup, login and email verification
type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	VerifyEmail(ctx context.Context, token string) error
}

// AuthHandler represents HTTP handler for auth-related requests
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register
func (ah *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, models.ErrValidation)
			return
		}

		user, err := ah.svc.Register(r.Context(), req)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login handles POST /api/auth/login
func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			respondError(w, models.ErrValidation)
			return
		}

		token, user, err := ah.svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})

		respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}

// VerifyEmail handles GET /api/auth/verify-email?token=...
func (ah *AuthHandler) VerifyEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")

		if err := ah.svc.VerifyEmail(r.Context(), token); err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
	}
}
