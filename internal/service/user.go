package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"stockbot/internal/config"
	"stockbot/internal/models"
	"stockbot/internal/repository"
	"stockbot/internal/security"
	"stockbot/internal/tasks"
)

// TaskEnqueuer hands tasks to the message broker. Satisfied by
// tasks.AsynqEnqueuer in production and by fakes in tests.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) error
}

type UserService struct {
	users    *repository.UserRepository
	tokens   *security.TokenMaker
	enqueuer TaskEnqueuer
	resetTTL time.Duration
}

func NewUserService(users *repository.UserRepository, tokens *security.TokenMaker, enqueuer TaskEnqueuer, cfg *config.Config) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		enqueuer: enqueuer,
		resetTTL: time.Duration(cfg.ResetTokenExpireMinutes) * time.Minute,
	}
}

// UpdateProfile applies a partial attribute patch. A "password" attribute is
// replaced by its hash before it reaches the database.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, attributes map[string]any) (*models.User, error) {
	if password, ok := attributes["password"]; ok {
		plain, _ := password.(string)
		hash, err := security.HashPassword(plain)
		if err != nil {
			return nil, err
		}
		delete(attributes, "password")
		attributes["hash_password"] = hash
	}

	if err := s.users.Updates(ctx, user, attributes); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, user.ID)
}

func (s *UserService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if !security.VerifyPassword(oldPassword, user.HashPassword) {
		return ErrWrongPassword
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.Updates(ctx, user, map[string]any{"hash_password": hash})
}

// CreateUser creates an account with an explicit role. Admin only.
func (s *UserService) CreateUser(ctx context.Context, email, password, role string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		HashPassword: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context, search string, skip, limit int) ([]models.User, int64, error) {
	return s.users.SearchByEmail(ctx, search, skip, limit)
}

// RequestPasswordReset issues a short-lived reset token and enqueues the
// reset email for asynchronous delivery.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token, err := s.tokens.CreateToken(user.ID, security.TokenTypeReset, s.resetTTL)
	if err != nil {
		return err
	}

	task, err := tasks.NewSendResetEmailTask(user.Email, token)
	if err != nil {
		return err
	}
	if err := s.enqueuer.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("enqueue reset email: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the subject of a valid reset token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.ParseToken(token)
	if err != nil || claims.Type != security.TokenTypeReset {
		return ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.Updates(ctx, user, map[string]any{"hash_password": hash})
}

// VerifyResetToken reports whether a reset token is currently valid. It does
// not consume the token: verification succeeds repeatedly until expiry.
func (s *UserService) VerifyResetToken(token string) bool {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return false
	}
	return claims.Type == security.TokenTypeReset
}
