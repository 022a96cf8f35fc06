package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/recipe/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, kcal_per_100g, active, created_at, updated_at
		 FROM recipes WHERE id = ?`,
		id,
	).Scan(&recipe).Error
	if err != nil {
		return nil, err
	}
	if recipe.ID == 0 {
		return nil, nil
	}
	return &recipe, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var recipes []domain.Recipe
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, kcal_per_100g, active, created_at, updated_at
		 FROM recipes WHERE id IN ?`,
		ids,
	).Scan(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
