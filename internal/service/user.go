package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

type UserService struct {
	db           *sqlx.DB
	auth         *AuthService
	fileService  *FileService
	emailService *EmailService
}

func NewUserService(database *sqlx.DB, auth *AuthService, fileService *FileService, emailService *EmailService) *UserService {
	return &UserService{
		db:           database,
		auth:         auth,
		fileService:  fileService,
		emailService: emailService,
	}
}

// UserWithProfile is what /me returns. Profile is nil if the row is missing.
type UserWithProfile struct {
	User    *model.User
	Profile *model.Profile
}

func (s *UserService) Me(ctx context.Context, userID string) (*UserWithProfile, error) {
	user, err := repository.NewUserRepository(s.db).ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = s.fileService.AvatarURL(ctx, userID)

	profile, err := repository.NewProfileRepository(s.db).ByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &UserWithProfile{User: user, Profile: profile}, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	users := repository.NewUserRepository(s.db)

	user, err := users.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return validation.Errors{"new_password": err.Error()}
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = users.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	err = s.emailService.SendPasswordChangedEmail(ctx, user.Email, s.fullName(ctx, userID))
	if err != nil {
		slog.Warn("failed to send password changed email", "user_id", userID, "error", err)
	}

	return nil
}

// DeleteAccount removes the user. Profile and file rows cascade; stored
// objects are removed best effort first.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := repository.NewUserRepository(s.db).ByID(ctx, userID)
	if err != nil {
		return err
	}
	name := s.fullName(ctx, userID)

	err = s.fileService.DeleteAllUserFilesFromStorage(ctx, userID)
	if err != nil {
		slog.Warn("failed to delete user files from storage", "user_id", userID, "error", err)
	}

	err = db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return repository.NewUserRepository(tx).Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account deleted", "user_id", userID)

	err = s.emailService.SendAccountDeletedEmail(ctx, user.Email, name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
	}

	return nil
}

func (s *UserService) fullName(ctx context.Context, userID string) string {
	profile, err := repository.NewProfileRepository(s.db).ByUserID(ctx, userID)
	if err != nil || profile.FullName == nil {
		return ""
	}
	return *profile.FullName
}
