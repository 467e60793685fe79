package service

import (
	"context"
	"strings"

	"bookmeet-api/core/cache"
	"bookmeet-api/core/constants"
	"bookmeet-api/core/errors"
	"bookmeet-api/core/logger"
	"bookmeet-api/core/utils"
	"bookmeet-api/modules/auth/dto"

	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single organizer account. The credentials
// come from config; the password is hashed once at construction so the
// plaintext never lives past startup.
type AuthService struct {
	email        string
	passwordHash []byte
	cache        cache.Cache
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
}

// NewAuthService hashes the configured organizer password and returns the
// service.
func NewAuthService(organizerEmail, organizerPassword string, c cache.Cache) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(organizerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(organizerEmail)),
		passwordHash: hash,
		cache:        c,
	}, nil
}

// Login verifies the organizer credentials and issues an access token.
// Failed attempts are counted in redis and the account is blocked for
// a cooldown period after too many failures.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Email and password are required", nil)
	}

	key := cache.LoginKey(email)

	if s.cache != nil {
		attempts, err := s.cache.LoginAttempts(ctx, key)
		if err != nil {
			logger.Warn("AuthService:Login:LoginAttempts", "error", err)
		} else if attempts >= constants.MaxLoginAttempts {
			return nil, errors.NewAppError(errors.ErrTooManyRequests, "Too many failed login attempts, try again later", nil)
		}
	}

	if email != s.email || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) != nil {
		s.recordFailure(ctx, key)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, key); err != nil {
			logger.Warn("AuthService:Login:ResetAttempts", "error", err)
		}
	}

	token, err := utils.GenerateToken(email)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue access token", err)
	}

	logger.Info("AuthService:Login:Success", "email", email)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.IncrementLoginAttempt(ctx, key); err != nil {
		logger.Warn("AuthService:Login:IncrementAttempt", "error", err)
		return
	}
	if err := s.cache.Expire(ctx, key, constants.BlockDuration); err != nil {
		logger.Warn("AuthService:Login:ExpireAttempt", "error", err)
	}
}
