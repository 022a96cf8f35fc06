package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusPaused   SubscriptionStatus = "paused"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Billable reports whether the status allows cutting new orders. Only
// active subscriptions get food; trials convert to active before their
// first cycle order.
func (s SubscriptionStatus) Billable() bool {
	return s == SubscriptionStatusActive
}

// Subscription links a customer's plan to its billing schedule. The order
// generator scans for rows whose CurrentPeriodEnd has elapsed.
type Subscription struct {
	ID               snowflake.ID       `gorm:"primaryKey" json:"id"`
	CustomerID       snowflake.ID       `gorm:"not null;index" json:"customer_id"`
	PlanID           snowflake.ID       `gorm:"not null;index" json:"plan_id"`
	Status           SubscriptionStatus `gorm:"type:text;not null;index" json:"status"`
	CurrentPeriodEnd time.Time          `gorm:"not null;index" json:"current_period_end"`
	IntervalDays     int                `gorm:"not null;default:14" json:"interval_days"`
	ProcessorID      string             `gorm:"type:text" json:"processor_id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
