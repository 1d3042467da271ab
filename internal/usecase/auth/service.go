package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clarityhire/internal/domain/user"
	"clarityhire/internal/pkg/validation"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Password        string `json:"password" validate:"required,min=6,max=50,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string
	Password string
}

// FieldError is returned when registration input fails validation.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string { return "invalid registration input" }

func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }

type Service struct {
	users     user.Repository
	validator *validation.Validator
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, validator: validation.New()}
}

// Register validates input and creates the user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if fields := s.validator.Struct(in); fields != nil {
		return user.User{}, &FieldError{Fields: fields}
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	u, err := NewUser(in.Email, in.Name, in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	if err := s.users.CreateUser(ctx, nil, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, in.Email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

// NewUser hashes the password and returns an unsaved user.
func NewUser(email, name, password string) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
