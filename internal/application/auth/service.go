package auth

import (
	"context"

	"github.com/orderhub/backend/internal/domain/shared"
	infraauth "github.com/orderhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginInput carries the login request
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the successful login payload
type LoginResult struct {
	Token *infraauth.Token `json:"token"`
	User  UserView         `json:"user"`
}

// UserView is the public shape of the authenticated user
type UserView struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Service authenticates the hub's single configured operator. The hub
// has no user store; credentials come from configuration as a bcrypt
// hash and are compared in constant time.
type Service struct {
	username     string
	passwordHash string
	jwtService   *infraauth.JWTService
	logger       *zap.Logger
}

// NewService creates the auth service for the configured default user
func NewService(username, passwordHash string, jwtService *infraauth.JWTService, logger *zap.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login verifies credentials and issues an access token. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Username != s.username {
		s.logger.Warn("Login attempt for unknown user", zap.String("username", input.Username))
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(input.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, invalidCredentials()
	}

	token, err := s.jwtService.Generate(s.username, "admin")
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue token")
	}

	s.logger.Info("Login succeeded", zap.String("username", input.Username))
	return &LoginResult{
		Token: token,
		User:  UserView{Username: s.username, Role: "admin"},
	}, nil
}

// Verify validates a bearer token and returns the user it identifies
func (s *Service) Verify(ctx context.Context, tokenString string) (*UserView, error) {
	claims, err := s.jwtService.Validate(tokenString)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrUnauthorized.Code, "Invalid or expired token")
	}
	return &UserView{Username: claims.Username, Role: claims.Role}, nil
}

func invalidCredentials() *shared.DomainError {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
}
