package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists plans. Callers pass the *gorm.DB so a service can run
// several calls inside one transaction.
type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Plan, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Plan, error)
	ListItems(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]PlanItem, error)
	ReplaceItems(ctx context.Context, db *gorm.DB, planID snowflake.ID, items []PlanItem) error
	UpdateComposed(ctx context.Context, db *gorm.DB, plan *Plan) error
}
