package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/plan/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const planColumns = `id, customer_id, dog_id, plan_type, topper_percent, total_cents,
	 processor_subscription_id, snapshot, created_at, updated_at`

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Plan, error) {
	return r.findByID(ctx, db, id, false)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Plan, error) {
	return r.findByID(ctx, db, id, true)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	if lock && supportsRowLocks(db) {
		query += ` FOR UPDATE`
	}

	var plan domain.Plan
	if err := db.WithContext(ctx).Raw(query, id).Scan(&plan).Error; err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]domain.PlanItem, error) {
	var items []domain.PlanItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, plan_id, recipe_id, quantity, portion_grams, unit_price_cents, interval_days, created_at, updated_at
		 FROM plan_items WHERE plan_id = ? ORDER BY id`,
		planID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceItems deletes every existing line before inserting the new set.
// Partial merges are never attempted; the composed result is the whole truth.
func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, planID snowflake.ID, items []domain.PlanItem) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM plan_items WHERE plan_id = ?`, planID).Error; err != nil {
		return err
	}

	for _, item := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO plan_items (id, plan_id, recipe_id, quantity, portion_grams, unit_price_cents, interval_days, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.PlanID,
			item.RecipeID,
			item.Quantity,
			item.PortionGrams,
			item.UnitPriceCents,
			item.IntervalDays,
			item.CreatedAt,
			item.UpdatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) UpdateComposed(ctx context.Context, db *gorm.DB, plan *domain.Plan) error {
	return db.WithContext(ctx).Exec(
		`UPDATE plans SET total_cents = ?, snapshot = ?, updated_at = ? WHERE id = ?`,
		plan.TotalCents,
		plan.Snapshot,
		plan.UpdatedAt,
		plan.ID,
	).Error
}

func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	default:
		return false
	}
}
