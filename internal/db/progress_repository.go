package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/fitcoach/internal/models"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProgressRepository struct {
	database *gorm.DB
}

func NewProgressRepository(database *gorm.DB) *ProgressRepository {
	return &ProgressRepository{database: database}
}

func (repo *ProgressRepository) ListByUser(ctx context.Context, userID uint) ([]models.ProgressEntry, error) {
	entries := make([]models.ProgressEntry, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_on ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordWeight appends a history row and amends the profile weight together.
// The entry's PreviousWeight is taken from the stored profile.
func (repo *ProgressRepository) RecordWeight(ctx context.Context, entry *models.ProgressEntry) (models.UserProfile, error) {
	var updated models.UserProfile
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, found, err := findProfile(tx, entry.UserID)
		if err != nil {
			return err
		}
		if !found {
			return ErrProfileNotFound
		}

		entry.PreviousWeight = profile.WeightKG
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		profile.SetWeight(entry.NewWeight)
		if err := tx.Model(&models.UserProfile{}).Where("id = ?", profile.ID).Updates(map[string]any{
			"weight_kg":       profile.WeightKG,
			"bmi":             profile.BMI,
			"weight_category": profile.WeightCategory,
		}).Error; err != nil {
			return err
		}
		updated = profile
		return nil
	})
	return updated, err
}
