package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parfumdelite/backend/internal/middleware"
	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService is interface for administrative account management
type AdminService interface {
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
	CreateUser(ctx context.Context, actor *models.User, req service.CreateUserRequest) (*models.User, error)
	UpdateUserRole(ctx context.Context, actor *models.User, targetID primitive.ObjectID, update models.RoleUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, targetID primitive.ObjectID) error
	ActiveDeliveries(ctx context.Context, actor *models.User) ([]models.ActiveDelivery, error)
}

// AdminHandler represents HTTP handler for admin requests
type AdminHandler struct {
	svc AdminService
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers handles GET /api/admin/users
func (ah *AdminHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		users, err := ah.svc.ListUsers(r.Context(), actor)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, users)
	}
}

// CreateUser handles POST /api/admin/users
func (ah *AdminHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		var req service.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, models.ErrValidation)
			return
		}

		user, err := ah.svc.CreateUser(r.Context(), actor, req)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, user)
	}
}

// UpdateUserRole handles PUT /api/admin/users/{userID}/role
func (ah *AdminHandler) UpdateUserRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
		if err != nil {
			respondError(w, models.ErrDataNotFound)
			return
		}

		var update models.RoleUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			respondError(w, models.ErrValidation)
			return
		}

		user, err := ah.svc.UpdateUserRole(r.Context(), actor, targetID, update)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}

// DeleteUser handles DELETE /api/admin/users/{userID}
func (ah *AdminHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
		if err != nil {
			respondError(w, models.ErrDataNotFound)
			return
		}

		if err := ah.svc.DeleteUser(r.Context(), actor, targetID); err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	}
}

// ActiveDeliveries handles GET /api/admin/active-deliveries
func (ah *AdminHandler) ActiveDeliveries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		deliveries, err := ah.svc.ActiveDeliveries(r.Context(), actor)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, deliveries)
	}
}
