// Package auth authenticates the reviewer and issues signed session tokens.
//
// There is a single reviewer account, configured through the environment as
// an email plus a bcrypt password hash. Sessions are stateless JWTs; logout
// is purely client-side token disposal.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any sign-in failure. Wrong email and
// wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken is returned when a session token fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the reviewer identity inside the session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service verifies reviewer credentials and manages session tokens.
type Service struct {
	reviewerEmail string
	passwordHash  []byte
	jwtSecret     []byte
	tokenTTL      time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a service for the configured reviewer account.
func NewService(reviewerEmail, passwordHash, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		reviewerEmail: strings.ToLower(strings.TrimSpace(reviewerEmail)),
		passwordHash:  []byte(passwordHash),
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
		now:           time.Now,
	}
}

// SignIn checks the credentials and returns a signed session token.
// Every failure mode yields ErrInvalidCredentials.
func (s *Service) SignIn(email, password string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != s.reviewerEmail {
		// Burn comparable time so a missing account is not observable
		// through response latency.
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken()
}

// generateToken issues an HS256 token for the reviewer.
func (s *Service) generateToken() (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Email: s.reviewerEmail,
	})
	return token.SignedString(s.jwtSecret)
}

// Verify parses and validates a session token, returning the reviewer email.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Email != s.reviewerEmail {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}

// TokenTTL returns the configured session lifetime, used to set the
// session cookie's expiry.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// HashPassword produces a bcrypt hash suitable for the
// AUTH_REVIEWER_PASSWORD_HASH setting.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
