// Package pricing resolves what a subscription cycle charges and how the
// total divides across recipes. Orders are cut even when the processor is
// unreachable, so resolution prefers local data and treats the live lookup
// as a fallback.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshbowl/freshbowl/internal/providers/payment"
	"go.uber.org/zap"
)

// ErrUnresolved means no pricing source produced a positive total. Callers
// must not invent a price; the condition surfaces to the operator instead.
var ErrUnresolved = errors.New("pricing_unresolved")

type Reconciler struct {
	live payment.Provider
	log  *zap.Logger
}

func NewReconciler(live payment.Provider, log *zap.Logger) *Reconciler {
	return &Reconciler{
		live: live,
		log:  log.Named("pricing"),
	}
}

// ResolveTotal returns the cycle total in cents. Precedence is fixed: the
// stored plan total, then the snapshot total, then a live processor lookup.
// The first positive amount wins and later sources are not consulted.
func (r *Reconciler) ResolveTotal(ctx context.Context, storedCents, snapshotCents int64, processorSubscriptionID string) (int64, error) {
	if storedCents > 0 {
		return storedCents, nil
	}
	if snapshotCents > 0 {
		return snapshotCents, nil
	}

	if processorSubscriptionID == "" {
		return 0, ErrUnresolved
	}

	price, err := r.live.SubscriptionPrice(ctx, processorSubscriptionID)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return 0, ErrUnresolved
		}
		return 0, fmt.Errorf("live price lookup: %w", err)
	}
	if price.UnitAmountCents <= 0 {
		return 0, ErrUnresolved
	}

	r.log.Info("resolved price from processor",
		zap.String("processor_subscription_id", processorSubscriptionID),
		zap.Int64("unit_amount_cents", price.UnitAmountCents),
	)
	return price.UnitAmountCents, nil
}

// UnitPrice splits a cycle total evenly across n line items, rounding down.
// The remainder cents stay unallocated rather than inflating any item.
func UnitPrice(totalCents int64, n int) int64 {
	if n <= 0 {
		return 0
	}
	return totalCents / int64(n)
}
