// Package payment looks up live subscription pricing at the billing
// processor. It is the last resort in price resolution, behind the stored
// plan total and the plan snapshot.
package payment

import (
	"context"
	"errors"
)

var (
	ErrLookupFailed  = errors.New("payment_lookup_failed")
	ErrNotConfigured = errors.New("payment_not_configured")
)

// Price is the processor's view of what a subscription charges per interval.
type Price struct {
	UnitAmountCents int64
	IntervalDays    int
}

type Provider interface {
	SubscriptionPrice(ctx context.Context, processorSubscriptionID string) (Price, error)
}
