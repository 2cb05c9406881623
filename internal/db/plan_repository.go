package db

import (
	"context"

	"github.com/terraincognita07/fitcoach/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

// Latest returns the active plan, which is the newest row for the user.
func (repo *PlanRepository) Latest(ctx context.Context, userID uint) (models.Plan, bool, error) {
	var plan models.Plan
	result := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&plan)
	if result.Error != nil {
		return models.Plan{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Plan{}, false, nil
	}
	return plan, true, nil
}

func (repo *PlanRepository) ListByUser(ctx context.Context, userID uint) ([]models.Plan, error) {
	plans := make([]models.Plan, 0)
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *PlanRepository) HasPlan(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.Plan{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveGenerated upserts the profile and appends the plan row in one transaction.
func (repo *PlanRepository) SaveGenerated(ctx context.Context, profile *models.UserProfile, plan *models.Plan) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertProfile(tx, profile); err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
}
