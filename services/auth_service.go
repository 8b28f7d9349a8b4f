package services

import (
	"context"
	"errors"

	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers shoppers and signs them in.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *ServiceError)
	CurrentUser(ctx context.Context, userID string) *models.User
}

type authServiceImpl struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, logger: logger}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal("Failed to create account", err)
	}

	user := &models.User{Email: req.Email, Name: req.Name, Password: string(hashed)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Email already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internal("Failed to create account", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and issues a session token.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", unauthorizedMsg("Invalid email or password")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, "", internal("Failed to sign in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", unauthorizedMsg("Invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, "", internal("Failed to sign in", err)
	}
	return user, token, nil
}

// CurrentUser returns nil for anonymous callers and for users that no longer exist.
func (s *authServiceImpl) CurrentUser(ctx context.Context, userID string) *models.User {
	if userID == "" {
		return nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to load session user", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return user
}
