package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/parfumdelite/backend/internal/middleware"
	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService is interface for the order lifecycle
type OrderService interface {
	Create(ctx context.Context, actor *models.User, req service.CreateOrderRequest) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, actor *models.User, orderID primitive.ObjectID, status, note string) (*models.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID primitive.ObjectID) (*models.Order, error)
	AvailableForPickup(ctx context.Context) ([]models.Order, error)
	ActiveByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Order, error)
}

// OrderHandler represents HTTP handler for customer order requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrder handles POST /api/orders
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		var req service.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, models.ErrValidation)
			return
		}

		order, err := oh.svc.Create(r.Context(), actor, req)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, order)
	}
}

// ListOrders handles GET /api/orders
func (oh *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		orders, err := oh.svc.ListByUser(r.Context(), actor.ID)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, orders)
	}
}
