package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/token"
	"github.com/macromind/backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

type RegisterInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

func (in *RegisterInput) Validate() error {
	errs := validation.Errors{}
	errs.Add("email", validation.ValidateEmail(in.Email))
	errs.Add("password", validation.ValidatePassword(in.Password))
	if in.FullName != nil {
		errs.Add("full_name", validation.ValidateFullName(*in.FullName))
	}
	return errs.Err()
}

type AuthService struct {
	db           *sqlx.DB
	tokens       *token.Manager
	emailService *EmailService
}

func NewAuthService(database *sqlx.DB, tokens *token.Manager, emailService *EmailService) *AuthService {
	return &AuthService{
		db:           database,
		tokens:       tokens,
		emailService: emailService,
	}
}

// Register creates the user and a default profile in one transaction and
// returns a fresh token pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*token.Pair, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		in.FullName = &trimmed
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := model.NewProfile(uuid.New().String(), user.ID, now)
	if in.FullName != nil && *in.FullName != "" {
		profile.FullName = in.FullName
	}

	err = db.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		err := repository.NewUserRepository(tx).Create(ctx, user)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		err = repository.NewProfileRepository(tx).Create(ctx, profile)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)

	name := ""
	if profile.FullName != nil {
		name = *profile.FullName
	}
	err = s.emailService.SendWelcomeEmail(ctx, user.Email, name)
	if err != nil {
		slog.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// Login returns the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*token.Pair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := repository.NewUserRepository(s.db).ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// Refresh exchanges a refresh token for a new pair. Access tokens and
// tokens of deleted users are rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := repository.NewUserRepository(s.db).ByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.tokens.Issue(user.ID, user.Email)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
