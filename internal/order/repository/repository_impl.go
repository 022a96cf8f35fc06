package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const orderColumns = `id, order_number, customer_id, subscription_id, is_subscription_order,
	 estimated_delivery_date, total_cents, recipes, fulfillment_status, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (`+orderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.SubscriptionID,
		order.IsSubscriptionOrder,
		order.EstimatedDeliveryDate,
		order.TotalCents,
		order.Recipes,
		order.FulfillmentStatus,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) FindBySubscriptionAndDate(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, deliveryDate time.Time) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM orders
		 WHERE subscription_id = ? AND estimated_delivery_date = ? AND is_subscription_order = ?`,
		subscriptionID,
		deliveryDate,
		true,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) UpdateFulfillmentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Stage, now time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET fulfillment_status = ?, updated_at = ? WHERE id = ?`,
		status,
		now,
		id,
	).Error
}

func (r *repo) InsertTrackingEvent(ctx context.Context, db *gorm.DB, event *domain.TrackingEvent) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tracking_events (id, order_id, event_type, description, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.OrderID,
		event.EventType,
		event.Description,
		event.Metadata,
		event.CreatedAt,
	).Error
}

func (r *repo) ListTrackingEvents(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.TrackingEvent, error) {
	var events []domain.TrackingEvent
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, event_type, description, metadata, created_at
		 FROM tracking_events WHERE order_id = ? ORDER BY created_at, id`,
		orderID,
	).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
