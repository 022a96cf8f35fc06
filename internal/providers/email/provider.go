// Package email notifies the fulfillment inbox when the generator cuts a
// new subscription order. Delivery is best effort; a send failure never
// fails the order.
package email

import (
	"context"
	"time"
)

type OrderNotification struct {
	OrderNumber  string
	RecipeNames  []string
	DeliveryDate time.Time
	TotalCents   int64
}

type Provider interface {
	OrderCreated(ctx context.Context, n OrderNotification) error
}

type NoOpProvider struct{}

func (NoOpProvider) OrderCreated(ctx context.Context, n OrderNotification) error {
	return nil
}
