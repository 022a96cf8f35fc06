package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/nutrition"
	"gorm.io/datatypes"
)

var (
	ErrNotFound       = errors.New("plan_not_found")
	ErrDogNotFound    = errors.New("plan_dog_not_found")
	ErrRecipeNotFound = errors.New("plan_recipe_not_found")
	ErrNoRecipes      = errors.New("plan_no_recipes")
)

// Plan is a dog's feeding configuration. TotalCents is the authoritative
// cycle price when set; Snapshot preserves the last composed state so order
// generation never depends on live catalog or processor reads.
type Plan struct {
	ID                      snowflake.ID                 `gorm:"primaryKey" json:"id"`
	CustomerID              snowflake.ID                 `gorm:"not null;index" json:"customer_id"`
	DogID                   snowflake.ID                 `gorm:"not null;index" json:"dog_id"`
	PlanType                nutrition.PlanType           `gorm:"type:text;not null;default:full" json:"plan_type"`
	TopperPercent           int                          `gorm:"not null;default:0" json:"topper_percent"`
	TotalCents              int64                        `gorm:"not null;default:0" json:"total_cents"`
	ProcessorSubscriptionID string                       `gorm:"type:text" json:"processor_subscription_id"`
	Snapshot                datatypes.JSONType[Snapshot] `gorm:"column:snapshot" json:"snapshot"`
	CreatedAt               time.Time                    `json:"created_at"`
	UpdatedAt               time.Time                    `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// PlanItem is one recipe line on a plan. Rows are replaced wholesale on every
// recompose; they carry no identity across updates.
type PlanItem struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	PlanID         snowflake.ID `gorm:"not null;index" json:"plan_id"`
	RecipeID       snowflake.ID `gorm:"not null;index" json:"recipe_id"`
	Quantity       int          `gorm:"not null;default:1" json:"quantity"`
	PortionGrams   int64        `gorm:"not null;default:0" json:"portion_grams"`
	UnitPriceCents int64        `gorm:"not null;default:0" json:"unit_price_cents"`
	IntervalDays   int          `gorm:"not null;default:14" json:"interval_days"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (PlanItem) TableName() string {
	return "plan_items"
}

// Snapshot is the denormalized plan state embedded in the plans row.
type Snapshot struct {
	Recipes     []SnapshotRecipe `json:"recipes"`
	TotalCents  int64            `json:"total_cents"`
	CadenceDays int              `json:"cadence_days"`
	ComposedAt  time.Time        `json:"composed_at"`
}

type SnapshotRecipe struct {
	RecipeID       snowflake.ID `json:"recipe_id"`
	Name           string       `json:"name"`
	Quantity       int          `json:"quantity"`
	PortionGrams   int64        `json:"portion_grams"`
	UnitPriceCents int64        `json:"unit_price_cents"`
}
