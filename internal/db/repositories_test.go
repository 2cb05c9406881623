package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/fitcoach/internal/fitness"
	"github.com/terraincognita07/fitcoach/internal/models"
)

func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(openSQLiteForTest(t, filepath.Join(t.TempDir(), "fitcoach.db")))
}

func sampleProfile() fitness.Profile {
	return fitness.Profile{
		Age:                 30,
		Gender:              fitness.GenderMale,
		HeightCM:            180,
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

func mustCreateUser(t *testing.T, repos *Repositories, username string) models.User {
	t.Helper()

	user := models.User{Name: "Test", Username: username, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	created, err := repos.Users.CreateIfUsernameFree(context.Background(), &user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if !created {
		t.Fatalf("expected user %s to be created", username)
	}
	return user
}

func TestUserRepositoryRejectsDuplicateUsername(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	first := mustCreateUser(t, repos, "ana")

	second := models.User{Name: "Other", Username: "ana", PasswordHash: "hash-2", CreatedAt: time.Now().UTC()}
	created, err := repos.Users.CreateIfUsernameFree(ctx, &second)
	if err != nil {
		t.Fatalf("duplicate insert returned error: %v", err)
	}
	if created {
		t.Fatal("expected duplicate username to be rejected")
	}

	found, ok, err := repos.Users.FindByUsername(ctx, "ana")
	if err != nil || !ok {
		t.Fatalf("FindByUsername() = %v, %v", ok, err)
	}
	if found.ID != first.ID || found.Name != "Test" {
		t.Fatalf("expected original user to remain, got %+v", found)
	}

	if _, ok, err := repos.Users.FindByUsername(ctx, "nobody"); err != nil || ok {
		t.Fatalf("FindByUsername(nobody) = %v, %v", ok, err)
	}
}

func TestUserRepositoryUpdatesPasswordAndLastLogin(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	user := mustCreateUser(t, repos, "ben")

	if err := repos.Users.UpdatePasswordHash(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePasswordHash() unexpected error: %v", err)
	}
	loginAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if err := repos.Users.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		t.Fatalf("TouchLastLogin() unexpected error: %v", err)
	}

	reloaded, err := repos.Users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error: %v", err)
	}
	if reloaded.PasswordHash != "new-hash" {
		t.Fatalf("expected updated hash, got %q", reloaded.PasswordHash)
	}
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(loginAt) {
		t.Fatalf("expected last login %v, got %v", loginAt, reloaded.LastLoginAt)
	}
}

func TestPlanRepositorySaveGeneratedUpsertsProfileAndAppendsPlans(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	user := mustCreateUser(t, repos, "cara")

	if has, err := repos.Plans.HasPlan(ctx, user.ID); err != nil || has {
		t.Fatalf("HasPlan() before generation = %v, %v", has, err)
	}

	first := models.NewUserProfile(user.ID, sampleProfile())
	if err := repos.Plans.SaveGenerated(ctx, &first, &models.Plan{UserID: user.ID, GymLabel: 3, DietLabel: 1}); err != nil {
		t.Fatalf("SaveGenerated() unexpected error: %v", err)
	}

	changed := sampleProfile()
	changed.WeightKG = 80
	second := models.NewUserProfile(user.ID, changed)
	if err := repos.Plans.SaveGenerated(ctx, &second, &models.Plan{UserID: user.ID, GymLabel: 5, DietLabel: 2}); err != nil {
		t.Fatalf("SaveGenerated() second call unexpected error: %v", err)
	}

	latest, found, err := repos.Plans.Latest(ctx, user.ID)
	if err != nil || !found {
		t.Fatalf("Latest() = %v, %v", found, err)
	}
	if latest.GymLabel != 5 || latest.DietLabel != 2 {
		t.Fatalf("expected newest plan to win, got %+v", latest)
	}

	history, err := repos.Plans.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 plan rows, got %d", len(history))
	}

	profile, found, err := repos.Profiles.FindByUser(ctx, user.ID)
	if err != nil || !found {
		t.Fatalf("FindByUser() = %v, %v", found, err)
	}
	if profile.ID != first.ID {
		t.Fatalf("expected profile row to be reused, got id %d want %d", profile.ID, first.ID)
	}
	if profile.WeightKG != 80 || profile.BMI != 24.69 || profile.WeightCategory != string(fitness.CategoryNormal) {
		t.Fatalf("unexpected profile after upsert: %+v", profile)
	}
}

func TestProgressRepositoryRecordWeightAmendsProfile(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()
	user := mustCreateUser(t, repos, "dan")

	entry := models.ProgressEntry{UserID: user.ID, NewWeight: 88, RecordedOn: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := repos.Progress.RecordWeight(ctx, &entry); err == nil {
		t.Fatal("expected error without a profile")
	}

	profile := models.NewUserProfile(user.ID, sampleProfile())
	if err := repos.Plans.SaveGenerated(ctx, &profile, &models.Plan{UserID: user.ID}); err != nil {
		t.Fatalf("SaveGenerated() unexpected error: %v", err)
	}

	later := models.ProgressEntry{UserID: user.ID, NewWeight: 86, RecordedOn: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)}
	updated, err := repos.Progress.RecordWeight(ctx, &later)
	if err != nil {
		t.Fatalf("RecordWeight() unexpected error: %v", err)
	}
	if later.PreviousWeight != 90 || updated.WeightKG != 86 {
		t.Fatalf("unexpected weights: entry=%+v profile=%+v", later, updated)
	}

	earlier := models.ProgressEntry{UserID: user.ID, NewWeight: 84, RecordedOn: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)}
	if _, err := repos.Progress.RecordWeight(ctx, &earlier); err != nil {
		t.Fatalf("RecordWeight() unexpected error: %v", err)
	}

	entries, err := repos.Progress.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].NewWeight != 84 || entries[1].NewWeight != 86 {
		t.Fatalf("expected entries ordered by date, got %+v", entries)
	}

	stored, _, err := repos.Profiles.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByUser() unexpected error: %v", err)
	}
	if stored.WeightKG != 84 || stored.BMI != 25.93 {
		t.Fatalf("expected profile weight 84, got %+v", stored)
	}
}
