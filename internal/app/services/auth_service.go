package services

import (
	"context"

	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/pkg/apperrors"
	"github.com/edukit/registrar/internal/pkg/auth"
)

// AdminCredentials is the single configured principal allowed to mutate data.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService issues access tokens for the configured admin principal.
type AuthService interface {
	IssueToken(ctx context.Context, form dto.TokenRequest) (*dto.TokenResponse, error)
}

type authServiceImpl struct {
	jwtService  *auth.JWTService
	credentials AdminCredentials
}

// NewAuthService creates a new auth service instance
func NewAuthService(jwtService *auth.JWTService, credentials AdminCredentials) AuthService {
	return &authServiceImpl{jwtService: jwtService, credentials: credentials}
}

// IssueToken verifies the submitted credentials and returns a signed access
// token. Username and password failures are indistinguishable to the caller.
func (s *authServiceImpl) IssueToken(ctx context.Context, form dto.TokenRequest) (*dto.TokenResponse, error) {
	if form.Username != s.credentials.Username ||
		!auth.CheckPassword(s.credentials.PasswordHash, form.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(form.Username)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to issue access token")
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
