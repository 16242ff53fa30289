package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filmshelf/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, credential checks, and bearer tokens.
// The signing key and TTL are injected at construction; tokens are stateless
// and there is no server-side revocation.
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(repo repository.Authorization, signingKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

var _ Authorization = (*AuthService)(nil)

// Register hashes the password and creates a new user.
func (s *AuthService) Register(ctx context.Context, name, username, password string) (int, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return 0, ValidationError("All fields are required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.authRepo.CreateUser(ctx, name, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// Claims defines JWT claims; the username is the identity every film
// operation is scoped by.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken validates credentials and returns a signed JWT. An unknown
// username and a wrong password produce the same error.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", ValidationError("Username and password are required")
	}

	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.Username)
}

// ParseToken parses a JWT and returns the embedded username. The username is
// trusted as-is for the token's lifetime; no store round trip.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used; rejects algorithm-confusion tokens.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}

	return claims.Username, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a username
func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	return token.SignedString(s.signingKey)
}
