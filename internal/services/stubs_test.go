package services

import (
	"context"
	"time"

	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/models"
)

type stubUserRepository struct {
	users        map[string]models.User
	nextID       uint
	err          error
	updatedHash  map[uint]string
	lastLoginFor []uint
}

func newStubUserRepository(users ...models.User) *stubUserRepository {
	stub := &stubUserRepository{users: map[string]models.User{}, nextID: 1, updatedHash: map[uint]string{}}
	for _, user := range users {
		stub.users[user.Username] = user
		if user.ID >= stub.nextID {
			stub.nextID = user.ID + 1
		}
	}
	return stub
}

func (stub *stubUserRepository) FindByID(_ context.Context, userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (stub *stubUserRepository) FindByUsername(_ context.Context, username string) (models.User, bool, error) {
	if stub.err != nil {
		return models.User{}, false, stub.err
	}
	user, ok := stub.users[username]
	return user, ok, nil
}

func (stub *stubUserRepository) CreateIfUsernameFree(_ context.Context, user *models.User) (bool, error) {
	if stub.err != nil {
		return false, stub.err
	}
	if _, exists := stub.users[user.Username]; exists {
		return false, nil
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.Username] = *user
	return true, nil
}

func (stub *stubUserRepository) UpdatePasswordHash(_ context.Context, userID uint, passwordHash string) error {
	stub.updatedHash[userID] = passwordHash
	for username, user := range stub.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			stub.users[username] = user
		}
	}
	return nil
}

func (stub *stubUserRepository) TouchLastLogin(_ context.Context, userID uint, _ time.Time) error {
	stub.lastLoginFor = append(stub.lastLoginFor, userID)
	return nil
}

type stubPlanStore struct {
	plans    []models.Plan
	profiles map[uint]models.UserProfile
	saveErr  error
}

func newStubPlanStore() *stubPlanStore {
	return &stubPlanStore{profiles: map[uint]models.UserProfile{}}
}

func (stub *stubPlanStore) SaveGenerated(_ context.Context, profile *models.UserProfile, plan *models.Plan) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.profiles[profile.UserID] = *profile
	plan.ID = uint(len(stub.plans) + 1)
	stub.plans = append(stub.plans, *plan)
	return nil
}

func (stub *stubPlanStore) Latest(_ context.Context, userID uint) (models.Plan, bool, error) {
	for index := len(stub.plans) - 1; index >= 0; index-- {
		if stub.plans[index].UserID == userID {
			return stub.plans[index], true, nil
		}
	}
	return models.Plan{}, false, nil
}

func (stub *stubPlanStore) HasPlan(ctx context.Context, userID uint) (bool, error) {
	_, found, err := stub.Latest(ctx, userID)
	return found, err
}

func (stub *stubPlanStore) ListByUser(_ context.Context, userID uint) ([]models.Plan, error) {
	result := make([]models.Plan, 0)
	for _, plan := range stub.plans {
		if plan.UserID == userID {
			result = append(result, plan)
		}
	}
	return result, nil
}

func (stub *stubPlanStore) FindByUser(_ context.Context, userID uint) (models.UserProfile, bool, error) {
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

type stubProgressStore struct {
	profiles *stubPlanStore
	entries  []models.ProgressEntry
}

func (stub *stubProgressStore) ListByUser(_ context.Context, userID uint) ([]models.ProgressEntry, error) {
	result := make([]models.ProgressEntry, 0)
	for _, entry := range stub.entries {
		if entry.UserID == userID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (stub *stubProgressStore) RecordWeight(_ context.Context, entry *models.ProgressEntry) (models.UserProfile, error) {
	profile := stub.profiles.profiles[entry.UserID]
	entry.PreviousWeight = profile.WeightKG
	stub.entries = append(stub.entries, *entry)
	profile.SetWeight(entry.NewWeight)
	stub.profiles.profiles[entry.UserID] = profile
	return profile, nil
}

func sampleProfile() fitness.Profile {
	return fitness.Profile{
		Age:                 30,
		Gender:              fitness.GenderMale,
		HeightCM:            170,
		WeightKG:            90,
		Disease:             fitness.DiseaseNone,
		Severity:            fitness.SeverityMild,
		ActivityLevel:       fitness.ActivityModerate,
		DietaryRestriction:  fitness.RestrictionNone,
		Allergy:             fitness.AllergyNone,
		Cuisine:             fitness.CuisineItalian,
		FitnessGoal:         fitness.GoalWeightLoss,
		FitnessType:         fitness.TypeCardio,
		CaloricIntake:       2400,
		Cholesterol:         180,
		BloodPressure:       120,
		Glucose:             90,
		WeeklyExerciseHours: 3,
		DietAdherence:       70,
		NutrientImbalance:   1,
	}
}
