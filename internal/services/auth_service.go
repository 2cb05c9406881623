package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/fitcoach/internal/models"
	"github.com/terraincognita07/fitcoach/internal/security"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

const (
	NextQuestionnaire = "/questionnaire"
	NextPlan          = "/plan"
)

type AuthUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, bool, error)
	CreateIfUsernameFree(ctx context.Context, user *models.User) (bool, error)
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
}

type PlanPresence interface {
	HasPlan(ctx context.Context, userID uint) (bool, error)
}

type AuthService struct {
	users AuthUserRepository
	plans PlanPresence
	now   func() time.Time
}

type LoginResult struct {
	User models.User
	Next string
}

func NewAuthService(users AuthUserRepository, plans PlanPresence) *AuthService {
	return &AuthService{users: users, plans: plans, now: time.Now}
}

func (service *AuthService) Register(ctx context.Context, name string, usernameRaw string, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	username := NormalizeUsername(usernameRaw)
	if name == "" || username == "" || password == "" {
		return models.User{}, ErrRegistrationIncomplete
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    service.now().UTC(),
	}
	created, err := service.users.CreateIfUsernameFree(ctx, &user)
	if err != nil {
		return models.User{}, err
	}
	if !created {
		return models.User{}, ErrUsernameTaken
	}
	return user, nil
}

// Authenticate checks credentials and upgrades legacy password hashes in place.
// Next points at the questionnaire until the user has a plan.
func (service *AuthService) Authenticate(ctx context.Context, usernameRaw string, passwordRaw string) (LoginResult, error) {
	username, password, err := NormalizeCredentialsInput(usernameRaw, passwordRaw)
	if err != nil {
		return LoginResult{}, err
	}

	user, found, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		return LoginResult{}, ErrAuthCredentialsInvalid
	}

	ok, upgrade := security.VerifyPassword(user.PasswordHash, password)
	if !ok {
		return LoginResult{}, ErrAuthCredentialsInvalid
	}
	if upgrade {
		hash, err := security.HashPassword(password)
		if err != nil {
			return LoginResult{}, fmt.Errorf("rehash password: %w", err)
		}
		if err := service.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return LoginResult{}, fmt.Errorf("upgrade password hash: %w", err)
		}
		user.PasswordHash = hash
	}

	loginAt := service.now().UTC()
	if err := service.users.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		return LoginResult{}, err
	}
	user.LastLoginAt = &loginAt

	next, err := service.NextPage(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Next: next}, nil
}

func (service *AuthService) NextPage(ctx context.Context, userID uint) (string, error) {
	hasPlan, err := service.plans.HasPlan(ctx, userID)
	if err != nil {
		return "", err
	}
	if hasPlan {
		return NextPlan, nil
	}
	return NextQuestionnaire, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

// ResetPassword replaces the user's password hash. It does not apply the
// strength policy so operators can hand out generated passwords.
func (service *AuthService) ResetPassword(ctx context.Context, usernameRaw string, password string) error {
	user, found, err := service.users.FindByUsername(ctx, NormalizeUsername(usernameRaw))
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	return service.users.UpdatePasswordHash(ctx, user.ID, hash)
}
