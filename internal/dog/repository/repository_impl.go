package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/dog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Dog, error) {
	var dog domain.Dog
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, name, weight_kg, activity, created_at, updated_at
		 FROM dogs WHERE id = ?`,
		id,
	).Scan(&dog).Error
	if err != nil {
		return nil, err
	}
	if dog.ID == 0 {
		return nil, nil
	}
	return &dog, nil
}
