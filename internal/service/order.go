package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/notification"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// GetOrdersByUserID returns user orders, newest first
	GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// UpdateOrder replaces the stored order document
	UpdateOrder(ctx context.Context, order *models.Order) error
	// AssignDriver atomically claims an unassigned order for a driver
	AssignDriver(ctx context.Context, orderID, driverID primitive.ObjectID, event models.StatusEvent) (*models.Order, error)
	// AvailableForPickup returns unassigned orders ready for pickup
	AvailableForPickup(ctx context.Context) ([]models.Order, error)
	// ActiveByDriver returns the driver's active deliveries
	ActiveByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Order, error)
	// ActiveDeliveries returns every order in the delivery pipeline
	ActiveDeliveries(ctx context.Context) ([]models.Order, error)
}

// Notifications enqueues outbound customer notifications.
type Notifications interface {
	EnqueueDelivered(recipient string, event notification.DeliveredEvent)
	EnqueueVerification(recipient, token string)
}

// CreateOrderRequest is customer checkout input
type CreateOrderRequest struct {
	Items           []models.OrderItem     `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// OrderService implements the order lifecycle: status transitions with a
// mandatory audit trail, driver assignment and delivery queries.
type OrderService struct {
	orders OrderRepository
	users  UserRepository
	notify Notifications
	logger *zap.Logger
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, users UserRepository, notify Notifications, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		notify: notify,
		logger: logger,
	}
}

// Create places a new order for the acting customer.
func (os *OrderService) Create(ctx context.Context, actor *models.User, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrValidation
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.ProductName == "" || item.Quantity < 1 {
			return nil, models.ErrValidation
		}
	}

	now := time.Now()
	order := &models.Order{
		UserID:          actor.ID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
		TrackingNumber:  uuid.NewString(),
		StatusHistory: []models.StatusEvent{{
			Status:    models.OrderStatusPending,
			Timestamp: now,
			Note:      "Order placed",
			UpdatedBy: actor.ID,
		}},
		CreatedAt: now,
	}

	return os.orders.CreateOrder(ctx, order)
}

// ListByUser returns the acting customer's orders.
func (os *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return os.orders.GetOrdersByUserID(ctx, userID)
}

// UpdateStatus moves the order to status, appending the audit entry the
// history always carries. Transition to delivered stamps DeliveredAt and
// queues the delivery confirmation for the owning customer. The
// notification is best-effort and never affects the outcome.
func (os *OrderService) UpdateStatus(ctx context.Context, actor *models.User, orderID primitive.ObjectID, status, note string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, models.ErrValidation
	}

	order, err := os.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = status

	if status == models.OrderStatusDelivered {
		order.DeliveredAt = &now
	}
	if status == models.OrderStatusCancelled {
		order.CancelledAt = &now
		if note != "" {
			order.CancellationReason = note
		}
	}

	if note == "" {
		note = fmt.Sprintf("Status updated to %s", status)
	}
	order.StatusHistory = append(order.StatusHistory, models.StatusEvent{
		Status:    status,
		Timestamp: now,
		Note:      note,
		UpdatedBy: actor.ID,
	})

	if err := os.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if status == models.OrderStatusDelivered {
		os.sendDeliveredNotice(ctx, order)
	}

	return order, nil
}

// sendDeliveredNotice looks up the owning customer and queues the delivery
// confirmation. Failures only reach the operational log.
func (os *OrderService) sendDeliveredNotice(ctx context.Context, order *models.Order) {
	customer, err := os.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		os.logger.Error("delivery notification skipped, customer lookup failed",
			zap.String("order", order.ID.Hex()),
			zap.Error(err))
		return
	}
	if customer.Email == "" {
		return
	}

	addr := fmt.Sprintf("%s, %s", order.ShippingAddress.AddressLine1, order.ShippingAddress.City)
	os.notify.EnqueueDelivered(customer.Email, notification.DeliveredEvent{
		Reference: order.ID.Hex(),
		Address:   addr,
		Total:     order.TotalAmount,
	})
}

// AssignDriver claims an unassigned order for the driver and moves it out
// for delivery. A second claim on the same order returns ErrConflictData
// and leaves the first assignment in place.
func (os *OrderService) AssignDriver(ctx context.Context, orderID, driverID primitive.ObjectID) (*models.Order, error) {
	if driverID.IsZero() {
		return nil, models.ErrValidation
	}

	event := models.StatusEvent{
		Status:    models.OrderStatusOutForDelivery,
		Timestamp: time.Now(),
		Note:      "Driver assigned",
		UpdatedBy: driverID,
	}

	order, err := os.orders.AssignDriver(ctx, orderID, driverID, event)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) || errors.Is(err, models.ErrConflictData) {
			return nil, err
		}
		return nil, models.ErrInternalError
	}

	return order, nil
}

// AvailableForPickup returns unassigned orders ready for pickup, newest
// first.
func (os *OrderService) AvailableForPickup(ctx context.Context) ([]models.Order, error) {
	return os.orders.AvailableForPickup(ctx)
}

// ActiveByDriver returns the driver's active deliveries, most recently
// assigned first.
func (os *OrderService) ActiveByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Order, error) {
	return os.orders.ActiveByDriver(ctx, driverID)
}
