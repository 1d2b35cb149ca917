package service

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository"
	"ctchen222/Book-Review/internal/validator"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

var (
	tracer = otel.Tracer("api.service")
	meter  = otel.Meter("api.service")
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// UserService defines registration and login.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (int64, error)
	Authenticate(ctx context.Context, req *models.LoginRequest) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
	logins   metric.Int64Counter
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	logins, _ := meter.Int64Counter("auth.logins",
		metric.WithDescription("Login attempts by result"))
	return &userService{userRepo: userRepo, logins: logins}
}

// Register validates the form, rejects taken usernames and stores a bcrypt
// hash of the password. The existence check and the insert are not atomic.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (int64, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()

	req.Username = strings.TrimSpace(req.Username)
	if err := validator.GetValidator().Struct(req); err != nil {
		return 0, formError(err)
	}
	if len(req.Password) > maxPasswordBytes {
		return 0, ErrPasswordTooLong
	}
	span.SetAttributes(attribute.String("user.name", req.Username))

	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	if existingUser != nil {
		return 0, fmt.Errorf("register user %q: %w", req.Username, ErrUsernameTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.userRepo.CreateUser(ctx, req.Username, string(hashedPassword))
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("user.id", id))
	return id, nil
}

// Authenticate returns the id of the user whose credentials match.
func (s *userService) Authenticate(ctx context.Context, req *models.LoginRequest) (int64, error) {
	ctx, span := tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()

	req.Username = strings.TrimSpace(req.Username)
	if err := validator.GetValidator().Struct(req); err != nil {
		return 0, formError(err)
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	if user == nil {
		s.recordLogin(ctx, false)
		return 0, fmt.Errorf("authenticate user %q: %w", req.Username, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordLogin(ctx, false)
		return 0, fmt.Errorf("authenticate user %q: %w", req.Username, ErrInvalidCredentials)
	}

	s.recordLogin(ctx, true)
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user.ID, nil
}

func (s *userService) recordLogin(ctx context.Context, success bool) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("auth.success", success))
	if s.logins != nil {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

// formError maps the first failed form rule onto a sentinel error.
func formError(err error) error {
	field, _, ok := validator.FirstFailure(err)
	if !ok {
		return err
	}
	switch field {
	case "Username":
		return ErrMissingUsername
	case "Password":
		return ErrMissingPassword
	case "Confirmation":
		return ErrPasswordMismatch
	}
	return err
}
