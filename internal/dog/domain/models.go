package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/nutrition"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("dog_not_found")

// Dog is the pet profile that owns the nutrition inputs. Weight and activity
// are the only biometrics portioning cares about.
type Dog struct {
	ID         snowflake.ID           `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID           `gorm:"not null;index" json:"customer_id"`
	Name       string                 `gorm:"type:text;not null" json:"name"`
	WeightKg   float64                `gorm:"column:weight_kg;not null" json:"weight_kg"`
	Activity   nutrition.ActivityTier `gorm:"type:text;not null;default:moderate" json:"activity"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func (Dog) TableName() string {
	return "dogs"
}

// Biometrics adapts the profile to the calculator input.
func (d *Dog) Biometrics() nutrition.Biometrics {
	return nutrition.Biometrics{
		WeightKg: d.WeightKg,
		Activity: d.Activity,
	}
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Dog, error)
}
