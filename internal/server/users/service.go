package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/server/auth"
	"github.com/dmitrijs2005/tixgo/internal/server/config"
	"github.com/dmitrijs2005/tixgo/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is a new account as received from the API.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Email    string
	FullName string
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	defaultRole                 string
	hashCost                    int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo Repository, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		defaultRole:                 cfg.DefaultRole,
		hashCost:                    bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrorValidation)
	}

	role := in.Role
	if role == "" {
		role = s.defaultRole
	}

	password := []byte(in.Password)
	defer shared.WipePassword(password)

	hash, err := bcrypt.GenerateFromPassword(password, s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", shared.ErrorValidation)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		UserName:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed access token.
// Unknown users and wrong passwords both yield shared.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, userName, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorUnauthorized
		}
		return "", err
	}

	candidate := []byte(password)
	defer shared.WipePassword(candidate)

	if bcrypt.CompareHashAndPassword(user.PasswordHash, candidate) != nil {
		return "", shared.ErrorUnauthorized
	}

	return auth.GenerateToken(user.UserName, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *Service) Get(ctx context.Context, userName string) (*User, error) {
	return s.repo.GetByUsername(ctx, userName)
}
