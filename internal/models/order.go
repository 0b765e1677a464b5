package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// order status
const (
	OrderStatusPending        = "pending"
	OrderStatusInProgress     = "in-progress"
	OrderStatusSubmitted      = "submitted"
	OrderStatusInReview       = "in-review"
	OrderStatusSuccess        = "success"
	OrderStatusFailed         = "failed"
	OrderStatusExpired        = "expired"
	OrderStatusReadyForPickup = "ready_for_pickup"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"

	// OrderStatusPickedUp is not part of the writable status set, it only
	// appears in driver activity query filters.
	OrderStatusPickedUp = "picked_up"
)

// payment status
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

var orderStatuses = map[string]struct{}{
	OrderStatusPending:        {},
	OrderStatusInProgress:     {},
	OrderStatusSubmitted:      {},
	OrderStatusInReview:       {},
	OrderStatusSuccess:        {},
	OrderStatusFailed:         {},
	OrderStatusExpired:        {},
	OrderStatusReadyForPickup: {},
	OrderStatusOutForDelivery: {},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// ValidOrderStatus reports whether s is a writable order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderItem is a single order line
type OrderItem struct {
	ProductID    string  `bson:"productId" json:"productId"`
	ProductName  string  `bson:"productName" json:"productName"`
	ProductImage string  `bson:"productImage" json:"productImage"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	Price        float64 `bson:"price" json:"price"`
	Size         string  `bson:"size" json:"size"`
}

// ShippingAddress is order delivery address
type ShippingAddress struct {
	FullName     string `bson:"fullName" json:"fullName"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	PostalCode   string `bson:"postalCode" json:"postalCode"`
	Country      string `bson:"country" json:"country"`
	Phone        string `bson:"phone" json:"phone"`
}

// StatusEvent is one audit record of an order status change.
// The history an order carries is append-only.
type StatusEvent struct {
	Status    string             `bson:"status" json:"status"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Note      string             `bson:"note" json:"note"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy"`
}

// Order is order entity
type Order struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID  `bson:"userId" json:"userId"`
	Items              []OrderItem         `bson:"items" json:"items"`
	TotalAmount        float64             `bson:"totalAmount" json:"totalAmount"`
	Status             string              `bson:"status" json:"status"`
	PaymentStatus      string              `bson:"paymentStatus" json:"paymentStatus"`
	ShippingAddress    ShippingAddress     `bson:"shippingAddress" json:"shippingAddress"`
	DriverID           *primitive.ObjectID `bson:"driverId" json:"driverId"`
	AssignedAt         *time.Time          `bson:"assignedAt" json:"assignedAt"`
	TrackingNumber     string              `bson:"trackingNumber" json:"trackingNumber"`
	StatusHistory      []StatusEvent       `bson:"statusHistory" json:"statusHistory"`
	EstimatedDelivery  *time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	DeliveredAt        *time.Time          `bson:"deliveredAt" json:"deliveredAt"`
	CancelledAt        *time.Time          `bson:"cancelledAt" json:"cancelledAt"`
	CancellationReason string              `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
}

// Party is a resolved user reference for display
type Party struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

// ActiveDelivery is an order with driver and customer identity resolved
// for the admin deliveries view.
type ActiveDelivery struct {
	Order    Order  `json:"order"`
	Customer *Party `json:"customer,omitempty"`
	Driver   *Party `json:"driver,omitempty"`
}
