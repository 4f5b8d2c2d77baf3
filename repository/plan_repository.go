package repository

import (
	"context"
	"errors"

	"streammusic/model"

	"gorm.io/gorm"
)

type PlanRepository interface {
	List(ctx context.Context) ([]model.SubscriptionPlan, error)
	GetByID(ctx context.Context, id int64) (*model.SubscriptionPlan, error)
}

type gormPlanRepository struct {
	db *gorm.DB
}

func NewGormPlanRepository(db *gorm.DB) PlanRepository {
	return &gormPlanRepository{db: db}
}

func (r *gormPlanRepository) List(ctx context.Context) ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}

func (r *gormPlanRepository) GetByID(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}
