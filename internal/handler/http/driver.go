package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parfumdelite/backend/internal/middleware"
	"github.com/parfumdelite/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverHandler represents HTTP handler for driver delivery requests
type DriverHandler struct {
	svc OrderService
}

// NewDriverHandler creates new DriverHandler instance
func NewDriverHandler(svc OrderService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

// Available handles GET /api/driver/available
func (dh *DriverHandler) Available() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := dh.svc.AvailableForPickup(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, orders)
	}
}

// MyOrders handles GET /api/driver/my-orders
func (dh *DriverHandler) MyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		orders, err := dh.svc.ActiveByDriver(r.Context(), actor.ID)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, orders)
	}
}

// Assign handles POST /api/driver/assign/{orderID}. The claim is always
// made for the authenticated account, a driver cannot claim on behalf of
// another.
func (dh *DriverHandler) Assign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orderID"))
		if err != nil {
			respondError(w, models.ErrDataNotFound)
			return
		}

		order, err := dh.svc.AssignDriver(r.Context(), orderID, actor.ID)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				respondJSON(w, http.StatusConflict, errorResponse{Message: "Order already assigned"})
				return
			}
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, order)
	}
}

type statusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateStatus handles POST /api/driver/status/{orderID}
func (dh *DriverHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.Principal(r.Context())
		if !ok {
			respondError(w, models.ErrInternalError)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orderID"))
		if err != nil {
			respondError(w, models.ErrDataNotFound)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
			respondError(w, models.ErrValidation)
			return
		}

		order, err := dh.svc.UpdateStatus(r.Context(), actor, orderID, req.Status, req.Note)
		if err != nil {
			respondError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, order)
	}
}
