package seed

import (
	recipedomain "github.com/freshbowl/freshbowl/internal/recipe/domain"
	"gorm.io/gorm"
)

// EnsureStarterRecipes seeds the recipe catalog once so a fresh development
// database can compose plans immediately.
func EnsureStarterRecipes(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&recipedomain.Recipe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starters := []recipedomain.Recipe{
		{ID: 1, Name: "Turkey & Brown Rice", KcalPer100g: 140, Active: true},
		{ID: 2, Name: "Salmon & Oats", KcalPer100g: 150, Active: true},
		{ID: 3, Name: "Beef & Sweet Potato", KcalPer100g: 160, Active: true},
		{ID: 4, Name: "Lamb & Lentils", KcalPer100g: 170, Active: true},
		{ID: 5, Name: "Chicken & Quinoa", KcalPer100g: 185, Active: true},
	}
	return conn.Create(&starters).Error
}
