package generator

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/freshbowl/freshbowl/internal/subscription/domain"
	"gorm.io/gorm"
)

// dueSubscription is the slim projection the generator works from.
type dueSubscription struct {
	ID         snowflake.ID
	CustomerID snowflake.ID
	PlanID     snowflake.ID
	Status     subscriptiondomain.SubscriptionStatus
}

// claimDueSubscriptions picks active subscriptions whose period end has
// elapsed relative to the target date and that have no order for that date
// yet. afterID is a keyset cursor: each batch starts past the previous one,
// so a batch full of failures cannot be re-claimed within the same run. On
// dialects with row locks the claim uses SKIP LOCKED so concurrent claims
// do not block on each other; double-cutting is prevented by the unique
// order index, not by the claim locks.
func (g *Generator) claimDueSubscriptions(ctx context.Context, target time.Time, afterID snowflake.ID, limit int) ([]dueSubscription, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	query := `SELECT s.id, s.customer_id, s.plan_id, s.status
		 FROM subscriptions s
		 WHERE s.status = ? AND s.current_period_end <= ? AND s.id > ?
		   AND NOT EXISTS (
		     SELECT 1 FROM orders o
		     WHERE o.subscription_id = s.id
		       AND o.estimated_delivery_date = ?
		       AND o.is_subscription_order = ?
		   )
		 ORDER BY s.id
		 LIMIT ?`
	if supportsRowLocks(g.db) {
		query += ` FOR UPDATE SKIP LOCKED`
	}

	var subs []dueSubscription
	err := g.db.WithContext(claimCtx).Transaction(func(tx *gorm.DB) error {
		return tx.Raw(query,
			subscriptiondomain.SubscriptionStatusActive,
			target,
			afterID,
			target,
			true,
			limit,
		).Scan(&subs).Error
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	default:
		return false
	}
}
