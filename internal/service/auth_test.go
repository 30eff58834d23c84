package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db/dbtest"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/token"
	"github.com/macromind/backend/internal/validation"
)

func newAuthServices(t *testing.T) (*sqlx.DB, *AuthService, *UserService, *token.Manager) {
	t.Helper()

	database := dbtest.Open(t, config.ServiceAuth)
	tokens := token.NewManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	email := NewEmailService("", "noreply@example.com", "MacroMind", true)
	auth := NewAuthService(database, tokens, email)
	users := NewUserService(database, auth, NewFileService(database, nil), email)
	return database, auth, users, tokens
}

func TestRegisterIssuesTokensAndDefaultProfile(t *testing.T) {
	ctx := context.Background()
	database, auth, _, tokens := newAuthServices(t)

	pair, err := auth.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Register returned empty tokens")
	}

	claims, err := tokens.Verify(pair.AccessToken, token.TypeAccess)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("email claim = %q, want lowercased", claims.Email)
	}

	profile, err := repository.NewProfileRepository(database).ByUserID(ctx, claims.UserID())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.FitnessGoal != model.FitnessGoalMaintain || profile.DietaryPreference != model.DietaryPreferenceNone || profile.HasCompletedOnboarding {
		t.Errorf("default profile = %+v", profile)
	}
}

func TestRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	ctx := context.Background()
	_, auth, _, _ := newAuthServices(t)

	_, err := auth.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.Register(ctx, RegisterInput{Email: "ADA@example.com", Password: "Secret123"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("duplicate: err = %v, want ErrEmailAlreadyExists", err)
	}

	_, err = auth.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "weakpass"})
	var fields validation.Errors
	if !errors.As(err, &fields) || fields["password"] == "" {
		t.Errorf("weak password: err = %v, want password field error", err)
	}
}

func TestLoginDoesNotLeakUserExistence(t *testing.T) {
	ctx := context.Background()
	_, auth, _, _ := newAuthServices(t)

	_, err := auth.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := auth.Login(ctx, "ada@example.com", "Secret123"); err != nil {
		t.Errorf("valid login: %v", err)
	}

	_, wrongPassword := auth.Login(ctx, "ada@example.com", "Secret124")
	_, unknownEmail := auth.Login(ctx, "nobody@example.com", "Secret123")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("errors = %v / %v, want ErrInvalidCredentials for both", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	_, auth, users, tokens := newAuthServices(t)

	pair, err := auth.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := auth.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Errorf("Refresh with refresh token: %v", err)
	}
	if _, err := auth.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh with access token: err = %v, want ErrInvalidToken", err)
	}

	claims, _ := tokens.Verify(pair.AccessToken, token.TypeAccess)
	if err := users.DeleteAccount(ctx, claims.UserID()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := auth.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh for deleted user: err = %v, want ErrInvalidToken", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	_, auth, users, tokens := newAuthServices(t)

	pair, _ := auth.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "Secret123"})
	claims, _ := tokens.Verify(pair.AccessToken, token.TypeAccess)

	err := users.UpdatePassword(ctx, claims.UserID(), "wrong", "NewSecret456")
	if !errors.Is(err, ErrInvalidCurrentPassword) {
		t.Errorf("wrong current: err = %v", err)
	}

	if err := users.UpdatePassword(ctx, claims.UserID(), "Secret123", "NewSecret456"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := auth.Login(ctx, "ada@example.com", "NewSecret456"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := auth.Login(ctx, "ada@example.com", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password: err = %v", err)
	}
}

func TestDeleteAccountCascadesToProfile(t *testing.T) {
	ctx := context.Background()
	database, auth, users, tokens := newAuthServices(t)

	pair, _ := auth.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "Secret123"})
	claims, _ := tokens.Verify(pair.AccessToken, token.TypeAccess)

	if err := users.DeleteAccount(ctx, claims.UserID()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	_, err := repository.NewProfileRepository(database).ByUserID(ctx, claims.UserID())
	if !errors.Is(err, repository.ErrProfileNotFound) {
		t.Errorf("profile after delete: err = %v", err)
	}
}
