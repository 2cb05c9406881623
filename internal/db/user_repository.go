package db

import (
	"context"
	"time"

	"github.com/terraincognita07/fitcoach/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByUsername reports found=false instead of gorm.ErrRecordNotFound.
func (repo *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, bool, error) {
	var user models.User
	result := repo.database.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

// CreateIfUsernameFree inserts the user unless the username is already taken.
// It returns false without error on a conflict.
func (repo *UserRepository) CreateIfUsernameFree(ctx context.Context, user *models.User) (bool, error) {
	result := repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(user)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *UserRepository) UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error {
	return repo.database.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return repo.database.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}
