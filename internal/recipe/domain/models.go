package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("recipe_not_found")

// Recipe is a catalog entry. KcalPer100g drives portion sizing; entries
// without a measured density fall back to the calculator default.
type Recipe struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	KcalPer100g float64      `gorm:"column:kcal_per_100g;not null;default:0" json:"kcal_per_100g"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Recipe, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Recipe, error)
}
