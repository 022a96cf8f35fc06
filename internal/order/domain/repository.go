package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	FindBySubscriptionAndDate(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, deliveryDate time.Time) (*Order, error)
	UpdateFulfillmentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Stage, now time.Time) error

	InsertTrackingEvent(ctx context.Context, db *gorm.DB, event *TrackingEvent) error
	ListTrackingEvents(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]TrackingEvent, error)
}
