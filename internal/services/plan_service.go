package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/models"
	"github.com/terraincognita07/fitcoach/internal/plans"
	"github.com/terraincognita07/fitcoach/internal/predict"
)

var (
	ErrProfileRequired = errors.New("questionnaire not completed")
	ErrPlanRequired    = errors.New("no plan generated yet")
)

type PlanStore interface {
	SaveGenerated(ctx context.Context, profile *models.UserProfile, plan *models.Plan) error
	Latest(ctx context.Context, userID uint) (models.Plan, bool, error)
	HasPlan(ctx context.Context, userID uint) (bool, error)
}

type ProfileReader interface {
	FindByUser(ctx context.Context, userID uint) (models.UserProfile, bool, error)
}

type PlanService struct {
	store    PlanStore
	profiles ProfileReader
	models   predict.Pair
	decoder  *plans.Decoder
	now      func() time.Time
}

func NewPlanService(store PlanStore, profiles ProfileReader, pair predict.Pair, decoder *plans.Decoder) (*PlanService, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if decoder == nil {
		return nil, errors.New("plan decoder is required")
	}
	return &PlanService{store: store, profiles: profiles, models: pair, decoder: decoder, now: time.Now}, nil
}

// Generate encodes the questionnaire, runs both classifiers and stores the
// profile with the new plan labels. Labels are decoded before anything is
// written so a model that disagrees with the catalogs never leaves a plan
// that cannot be shown.
func (service *PlanService) Generate(ctx context.Context, userID uint, profile fitness.Profile) (plans.Plan, error) {
	gymFeatures, err := fitness.EncodeGym(profile)
	if err != nil {
		return plans.Plan{}, err
	}
	dietFeatures, err := fitness.EncodeDiet(profile)
	if err != nil {
		return plans.Plan{}, err
	}

	gymLabel, err := service.models.Gym.Predict(ctx, gymFeatures.Slice())
	if err != nil {
		return plans.Plan{}, fmt.Errorf("predict gym plan: %w", err)
	}
	dietLabel, err := service.models.Diet.Predict(ctx, dietFeatures.Slice())
	if err != nil {
		return plans.Plan{}, fmt.Errorf("predict diet type: %w", err)
	}

	decoded, err := service.decoder.Decode(gymLabel, dietLabel)
	if err != nil {
		return plans.Plan{}, err
	}

	record := models.NewUserProfile(userID, profile)
	plan := models.Plan{
		UserID:    userID,
		GymLabel:  gymLabel,
		DietLabel: dietLabel,
		CreatedAt: service.now().UTC(),
	}
	if err := service.store.SaveGenerated(ctx, &record, &plan); err != nil {
		return plans.Plan{}, fmt.Errorf("save plan: %w", err)
	}
	return decoded, nil
}

// Active decodes the user's newest plan.
func (service *PlanService) Active(ctx context.Context, userID uint) (plans.Plan, error) {
	plan, found, err := service.store.Latest(ctx, userID)
	if err != nil {
		return plans.Plan{}, err
	}
	if !found {
		return plans.Plan{}, ErrPlanRequired
	}
	return service.decoder.Decode(plan.GymLabel, plan.DietLabel)
}

func (service *PlanService) HasPlan(ctx context.Context, userID uint) (bool, error) {
	return service.store.HasPlan(ctx, userID)
}

func (service *PlanService) Profile(ctx context.Context, userID uint) (models.UserProfile, error) {
	profile, found, err := service.profiles.FindByUser(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !found {
		return models.UserProfile{}, ErrProfileRequired
	}
	return profile, nil
}
