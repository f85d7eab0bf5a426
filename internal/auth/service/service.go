// Package service implements administrator authentication.
package service

import (
	"context"
	"time"

	"customcss_backend/platform/apperr"
	"customcss_backend/platform/config"
	"customcss_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Config names the configuration surface the auth service needs: the admin
// password hash, the token TTL and the signing secret.
type Config = config.AuthConfig

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// Service verifies the admin password and issues access tokens.
type Service struct {
	cfg Config
	log *logger.Logger
}

// New creates the auth service.
func New(cfg Config, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Login verifies the password against the configured bcrypt hash and issues
// a signed access token. Failures deliberately share one message so the
// response does not reveal whether an admin account exists.
func (s *Service) Login(ctx context.Context, password string) (Token, error) {
	hash := s.cfg.GetAdminPasswordHash()
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.log.WithContext(ctx).Warn("failed admin login attempt")
		return Token{}, apperr.Unauthorized("invalid credentials")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, "failed to sign access token", err)
	}

	return Token{AccessToken: signed, ExpiresIn: ttl}, nil
}
