package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"

	"github.com/sheetdash/backend/internal/config"
	"github.com/sheetdash/backend/internal/logger"
)

var (
	// ErrInvalidCredentials covers both a wrong username/password pair and
	// a token that fails verification.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMisconfigured means the admin credentials or signing secret are
	// not set; login cannot work at all.
	ErrMisconfigured = errors.New("server configuration error")
)

// Tokens are short-lived and there is no refresh: the admin logs in again
// after an hour.
const tokenTTL = time.Hour

// Service checks the single hardcoded admin credential pair and issues
// HS256 bearer tokens.
type Service struct {
	cfg config.AuthConfig
	log zerolog.Logger
	now func() time.Time
}

func NewService(cfg config.AuthConfig) *Service {
	return &Service{cfg: cfg, log: logger.Get(), now: time.Now}
}

// Login validates the credentials and returns a signed token.
func (s *Service) Login(username, password string) (string, error) {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" || s.cfg.JWTSecret == "" {
		s.log.Error().Msg("admin credentials or JWT secret not configured")
		return "", ErrMisconfigured
	}

	if username != s.cfg.AdminUsername || password != s.cfg.AdminPassword {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	s.log.Info().Str("username", username).Msg("admin logged in")
	return signed, nil
}

// Verify checks a bearer token's signature and expiry.
func (s *Service) Verify(tokenString string) error {
	if s.cfg.JWTSecret == "" {
		return ErrMisconfigured
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}
	return nil
}
