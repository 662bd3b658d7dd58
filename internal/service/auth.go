package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/ratelimit"
	"github.com/automation-market/marketplace/internal/utils/jwt"
	"github.com/automation-market/marketplace/internal/utils/password"
	"github.com/automation-market/marketplace/internal/utils/validate"
)

// Операции, для которых ограничиваются попытки
const (
	opRegister = "register"
	opLogin    = "login"
)

// AuthService реализует domain.AuthService
type AuthService struct {
	userRepo       domain.UserRepository
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
	limiter        *ratelimit.Limiter
	validator      *validate.Validator
}

// NewAuthService создает новый AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	limiter *ratelimit.Limiter,
	validator *validate.Validator,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
		limiter:        limiter,
		validator:      validator,
	}
}

// Register регистрирует нового пользователя.
// Каждая неудачная попытка учитывается ограничителем по ключу клиента.
func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput, clientKey string) (string, error) {
	key := ratelimit.Key(opRegister, clientKey)
	if err := s.limiter.Allow(key); err != nil {
		return "", err
	}

	token, err := s.register(ctx, input)
	if err != nil {
		s.limiter.Failure(key)
		return "", err
	}

	s.limiter.Success(key)
	return token, nil
}

func (s *AuthService) register(ctx context.Context, input domain.RegisterInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if err := s.validator.Struct(input); err != nil {
		return "", err
	}
	if err := password.ValidateStrength(input.Password); err != nil {
		return "", err
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to hash password for %q: %w", input.Email, err)
	}

	user, err := s.userRepo.CreateUser(ctx, input.Email, input.FullName, hash)
	if err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, domain.ErrUserExists) {
			return "", err
		}
		return "", fmt.Errorf("auth service: failed to register user %q: %w", input.Email, err)
	}

	return s.issue(user)
}

// Login аутентифицирует пользователя
func (s *AuthService) Login(ctx context.Context, email, userPassword, clientKey string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || userPassword == "" {
		return "", ErrEmptyCredentials
	}

	key := ratelimit.Key(opLogin, clientKey)
	if err := s.limiter.Allow(key); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.limiter.Failure(key)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to get user %q: %w", email, err)
	}

	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		s.limiter.Failure(key)
		return "", domain.ErrInvalidCredentials
	}

	s.limiter.Success(key)
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	token, err := s.jwtManager.Generate(user.ID, string(role))
	if err != nil {
		return "", fmt.Errorf("auth service: failed to generate token for user %s: %w", user.ID, err)
	}
	return token, nil
}
