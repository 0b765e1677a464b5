package repository

import (
	"context"
	"errors"
	"time"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/repository/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

// OrderRepository implements order persistence over mongo
type OrderRepository struct {
	db *mongodb.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *mongodb.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) col() *mongo.Collection {
	return or.db.Collection(ordersCollection)
}

// CreateOrder inserts new order
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	res, err := or.col().InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}

	return order, nil
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := or.col().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrdersByUserID returns user orders, newest first
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return or.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: -1}})
}

// UpdateOrder replaces the stored order document.
func (or *OrderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	res, err := or.col().ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// AssignDriver atomically claims an unassigned order for driverID. The
// conditional filter on a null driverId makes concurrent claims for the
// same order resolve to exactly one winner. The losing call gets
// ErrConflictData, a missing order gets ErrDataNotFound.
func (or *OrderRepository) AssignDriver(ctx context.Context, orderID, driverID primitive.ObjectID, event models.StatusEvent) (*models.Order, error) {
	now := time.Now()

	filter := bson.M{"_id": orderID, "driverId": nil}
	update := bson.M{
		"$set": bson.M{
			"driverId":   driverID,
			"assignedAt": now,
			"status":     models.OrderStatusOutForDelivery,
		},
		"$push": bson.M{"statusHistory": event},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := or.col().FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// the conditional write missed: either the order is gone or it is
	// already claimed
	if _, err := or.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	return nil, models.ErrConflictData
}

// AvailableForPickup returns unassigned orders ready for pickup, newest first.
func (or *OrderRepository) AvailableForPickup(ctx context.Context) ([]models.Order, error) {
	filter := bson.M{
		"status":   models.OrderStatusReadyForPickup,
		"driverId": nil,
	}

	return or.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}})
}

// ActiveByDriver returns the driver's active deliveries, most recently
// assigned first.
func (or *OrderRepository) ActiveByDriver(ctx context.Context, driverID primitive.ObjectID) ([]models.Order, error) {
	filter := bson.M{
		"driverId": driverID,
		"status":   bson.M{"$in": []string{models.OrderStatusOutForDelivery, models.OrderStatusPickedUp}},
	}

	return or.find(ctx, filter, bson.D{{Key: "assignedAt", Value: -1}})
}

// ActiveDeliveries returns every order currently in the delivery pipeline.
func (or *OrderRepository) ActiveDeliveries(ctx context.Context) ([]models.Order, error) {
	filter := bson.M{
		"status": bson.M{"$in": []string{
			models.OrderStatusReadyForPickup,
			models.OrderStatusOutForDelivery,
			models.OrderStatusPickedUp,
		}},
	}

	return or.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}})
}

func (or *OrderRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Order, error) {
	opts := options.Find().SetSort(sort)

	cur, err := or.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
