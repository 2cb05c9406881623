package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/fitcoach/internal/models"
)

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	users := newStubUserRepository()
	service := NewAuthService(users, newStubPlanStore())
	ctx := context.Background()

	first, err := service.Register(ctx, "Ana", " ana ", "Secret123")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if first.Username != "ana" || first.ID == 0 {
		t.Fatalf("unexpected user %+v", first)
	}
	if !strings.HasPrefix(first.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", first.PasswordHash)
	}

	if _, err := service.Register(ctx, "Other", "ana", "Secret456"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register(duplicate) error = %v, want ErrUsernameTaken", err)
	}
	if stored := users.users["ana"]; stored.Name != "Ana" {
		t.Fatalf("duplicate registration must not change state, got %+v", stored)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	service := NewAuthService(newStubUserRepository(), newStubPlanStore())
	ctx := context.Background()

	if _, err := service.Register(ctx, "", "ana", "Secret123"); !errors.Is(err, ErrRegistrationIncomplete) {
		t.Fatalf("expected ErrRegistrationIncomplete, got %v", err)
	}
	if _, err := service.Register(ctx, "Ana", "ana", "short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register(ctx, "Ana", "ana", "lettersonly"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for password without digits, got %v", err)
	}
}

func TestAuthenticateRoutesByPlanPresence(t *testing.T) {
	users := newStubUserRepository()
	store := newStubPlanStore()
	service := NewAuthService(users, store)
	ctx := context.Background()

	user, err := service.Register(ctx, "Ana", "ana", "Secret123")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	result, err := service.Authenticate(ctx, "ana", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if result.Next != NextQuestionnaire {
		t.Fatalf("expected next=%s, got %s", NextQuestionnaire, result.Next)
	}

	store.plans = append(store.plans, models.Plan{UserID: user.ID, GymLabel: 1})
	result, err = service.Authenticate(ctx, "ana", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if result.Next != NextPlan {
		t.Fatalf("expected next=%s, got %s", NextPlan, result.Next)
	}
	if len(users.lastLoginFor) != 2 {
		t.Fatalf("expected last login to be recorded twice, got %v", users.lastLoginFor)
	}

	if _, err := service.Authenticate(ctx, "ana", "wrong-password1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("Authenticate(wrong) error = %v, want ErrAuthCredentialsInvalid", err)
	}
	if _, err := service.Authenticate(ctx, "nobody", "Secret123"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("Authenticate(unknown) error = %v, want ErrAuthCredentialsInvalid", err)
	}
	if _, err := service.Authenticate(ctx, " ", ""); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("Authenticate(empty) error = %v, want ErrAuthCredentialsInvalid", err)
	}
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	sum := sha256.Sum256([]byte("oldpass"))
	legacy := models.User{ID: 7, Name: "Old", Username: "old", PasswordHash: hex.EncodeToString(sum[:])}
	users := newStubUserRepository(legacy)
	service := NewAuthService(users, newStubPlanStore())

	result, err := service.Authenticate(context.Background(), "old", "oldpass")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	upgraded, ok := users.updatedHash[7]
	if !ok || !strings.HasPrefix(upgraded, "$2") {
		t.Fatalf("expected bcrypt upgrade, got %q", upgraded)
	}
	if result.User.PasswordHash != upgraded {
		t.Fatal("expected returned user to carry the upgraded hash")
	}

	if _, err := service.Authenticate(context.Background(), "old", "oldpass"); err != nil {
		t.Fatalf("second login after upgrade failed: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	users := newStubUserRepository(models.User{ID: 3, Username: "cara", PasswordHash: "x"})
	service := NewAuthService(users, newStubPlanStore())
	ctx := context.Background()

	if err := service.ResetPassword(ctx, "nobody", "Another123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ResetPassword(unknown) error = %v, want ErrUserNotFound", err)
	}
	if err := service.ResetPassword(ctx, "cara", "Another123"); err != nil {
		t.Fatalf("ResetPassword() unexpected error: %v", err)
	}
	if _, err := service.Authenticate(ctx, "cara", "Another123"); err != nil {
		t.Fatalf("login with reset password failed: %v", err)
	}
}
