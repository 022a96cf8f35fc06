// Package nutrition converts dog biometrics and a plan configuration into
// gram-accurate recipe portions for one billing cycle. It is pure: no I/O,
// no clock, deterministic for a given input.
package nutrition

import (
	"errors"
	"math"
)

type ActivityTier string

const (
	ActivityLow      ActivityTier = "low"
	ActivityModerate ActivityTier = "moderate"
	ActivityHigh     ActivityTier = "high"
)

type PlanType string

const (
	PlanTypeFull   PlanType = "full"
	PlanTypeTopper PlanType = "topper"
)

const (
	// CycleDays is the portioning cadence. The business ships biweekly boxes,
	// so portions always cover 14 days regardless of the billing interval on
	// the subscription.
	CycleDays = 14

	// DefaultKcalPer100g is assumed for recipes with no recorded density.
	DefaultKcalPer100g = 160
)

var (
	ErrInvalidWeight        = errors.New("invalid_weight")
	ErrInvalidActivity      = errors.New("invalid_activity")
	ErrInvalidPlanType      = errors.New("invalid_plan_type")
	ErrInvalidTopperPercent = errors.New("invalid_topper_percent")
	ErrNoRecipes            = errors.New("no_recipes")
)

// Biometrics is the immutable nutrition input owned by the dog profile.
type Biometrics struct {
	WeightKg float64
	Activity ActivityTier
}

// Recipe carries the only recipe attribute the calculator needs.
type Recipe struct {
	KcalPer100g float64
}

// Portion is the computed serving for one recipe.
type Portion struct {
	DailyKcal  float64
	DailyGrams float64
	CycleGrams int64
}

// Multiplier returns the activity factor applied to RER.
func (t ActivityTier) Multiplier() (float64, error) {
	switch t {
	case ActivityLow:
		return 0.8, nil
	case ActivityModerate:
		return 1.0, nil
	case ActivityHigh:
		return 1.2, nil
	default:
		return 0, ErrInvalidActivity
	}
}

// ValidTopperPercent reports whether p is a supported topper portion size.
func ValidTopperPercent(p int) bool {
	return p == 25 || p == 50 || p == 75
}

// RER is the resting energy requirement in kcal/day.
func RER(weightKg float64) float64 {
	return 110 * math.Pow(weightKg, 0.75)
}

// DailyEnergy computes the daily energy requirement (DER) in kcal/day.
func DailyEnergy(b Biometrics) (float64, error) {
	if b.WeightKg <= 0 {
		return 0, ErrInvalidWeight
	}
	multiplier, err := b.Activity.Multiplier()
	if err != nil {
		return 0, err
	}
	return RER(b.WeightKg) * multiplier, nil
}

// CyclePortions splits the dog's daily energy need evenly across the selected
// recipes and sizes each serving for one cycle. The recipe order of the result
// matches the input. An empty recipe list is a contract violation.
func CyclePortions(b Biometrics, planType PlanType, topperPercent int, recipes []Recipe) ([]Portion, error) {
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}

	der, err := DailyEnergy(b)
	if err != nil {
		return nil, err
	}

	portionMultiplier := 1.0
	switch planType {
	case PlanTypeFull:
	case PlanTypeTopper:
		if !ValidTopperPercent(topperPercent) {
			return nil, ErrInvalidTopperPercent
		}
		portionMultiplier = float64(topperPercent) / 100
	default:
		return nil, ErrInvalidPlanType
	}

	dailyKcal := der * portionMultiplier
	perRecipeKcal := dailyKcal / float64(len(recipes))

	portions := make([]Portion, 0, len(recipes))
	for _, recipe := range recipes {
		density := recipe.KcalPer100g
		if density <= 0 {
			density = DefaultKcalPer100g
		}
		dailyGrams := perRecipeKcal / (density * 10) * 1000
		portions = append(portions, Portion{
			DailyKcal:  perRecipeKcal,
			DailyGrams: dailyGrams,
			CycleGrams: int64(math.Round(dailyGrams * CycleDays)),
		})
	}
	return portions, nil
}
