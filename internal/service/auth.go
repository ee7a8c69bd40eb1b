package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/caffebar919/server/internal/auth"
	"github.com/caffebar919/server/internal/model"
	"github.com/caffebar919/server/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	userRepo repository.AdminUserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.AdminUserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login verifies the credentials and issues a session token.
// An unknown username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.AdminUser, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("userId", user.ID).Msg("failed to update last login")
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ValidateToken checks a session token and returns its claims, or nil
// when the token is missing, malformed, expired, or badly signed.
func (s *AuthService) ValidateToken(token string) *auth.Claims {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	return claims
}

func (s *AuthService) SessionTTL() int {
	return int(s.tokens.TTL().Seconds())
}
