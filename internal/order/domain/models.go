package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var ErrNotFound = errors.New("order_not_found")

// Order is a cut box for one billing cycle. The unique index on
// (subscription_id, estimated_delivery_date) is what makes generation
// idempotent: two concurrent runs can both pass the existence check, but
// only one insert survives.
type Order struct {
	ID                    snowflake.ID                        `gorm:"primaryKey" json:"id"`
	OrderNumber           string                              `gorm:"type:text;not null;uniqueIndex" json:"order_number"`
	CustomerID            snowflake.ID                        `gorm:"not null;index" json:"customer_id"`
	SubscriptionID        snowflake.ID                        `gorm:"not null;uniqueIndex:ux_orders_subscription_delivery,priority:1" json:"subscription_id"`
	IsSubscriptionOrder   bool                                `gorm:"not null;default:false" json:"is_subscription_order"`
	EstimatedDeliveryDate time.Time                           `gorm:"column:estimated_delivery_date;not null;uniqueIndex:ux_orders_subscription_delivery,priority:2" json:"estimated_delivery_date"`
	TotalCents            int64                               `gorm:"not null;default:0" json:"total_cents"`
	Recipes               datatypes.JSONType[[]OrderRecipe]   `gorm:"column:recipes" json:"recipes"`
	FulfillmentStatus     Stage                               `gorm:"type:text;not null;default:looking_for_driver" json:"fulfillment_status"`
	CreatedAt             time.Time                           `json:"created_at"`
	UpdatedAt             time.Time                           `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderRecipe is the frozen line copied from the plan snapshot at cut time.
// Later plan edits never touch an existing order.
type OrderRecipe struct {
	RecipeID       snowflake.ID `json:"recipe_id"`
	Name           string       `json:"name"`
	Quantity       int          `json:"quantity"`
	PortionGrams   int64        `json:"portion_grams"`
	UnitPriceCents int64        `json:"unit_price_cents"`
}

// TrackingEvent is an append-only fulfillment update. EventType is free
// text on purpose; couriers and back-office tools write whatever they have
// and the timeline sorts it out.
type TrackingEvent struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrderID     snowflake.ID      `gorm:"not null;index" json:"order_id"`
	EventType   string            `gorm:"type:text;not null" json:"event_type"`
	Description string            `gorm:"type:text" json:"description"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}
