package db

import (
	"context"

	"github.com/terraincognita07/fitcoach/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUser(ctx context.Context, userID uint) (models.UserProfile, bool, error) {
	return findProfile(repo.database.WithContext(ctx), userID)
}

func findProfile(database *gorm.DB, userID uint) (models.UserProfile, bool, error) {
	var profile models.UserProfile
	result := database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.UserProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserProfile{}, false, nil
	}
	return profile, true, nil
}

// upsertProfile keeps one profile row per user, replacing answers in place.
func upsertProfile(tx *gorm.DB, profile *models.UserProfile) error {
	existing, found, err := findProfile(tx, profile.UserID)
	if err != nil {
		return err
	}
	if !found {
		return tx.Create(profile).Error
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return tx.Save(profile).Error
}
