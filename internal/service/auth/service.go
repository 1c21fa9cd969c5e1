package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/util"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type Service struct {
	userRepo  UserRepository
	jwtSecret string
}

func NewService(userRepo UserRepository, jwtSecret string) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user and returns it along with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return nil, "", apperr.Validation("valid email required")
	}
	if len(password) < minPasswordLength {
		return nil, "", apperr.Validation("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.Validation("email already exists")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks the credentials and returns the user and a fresh token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
