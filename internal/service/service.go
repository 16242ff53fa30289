package service

import (
	"context"
	"time"

	"filmshelf/internal/models"
	"filmshelf/internal/repository"
)

type Authorization interface {
	// Register creates a user with a hashed password and returns its ID.
	Register(ctx context.Context, name, username, password string) (int, error)
	// GenerateToken checks credentials and returns a signed bearer token.
	GenerateToken(ctx context.Context, username, password string) (string, error)
	// ParseToken verifies a bearer token and returns the embedded username.
	ParseToken(accessToken string) (string, error)
}

// Films exposes the ownership-scoped film list operations. The owner string
// is the identity resolved by the authorization layer; List accepts an empty
// owner for anonymous callers.
type Films interface {
	List(ctx context.Context, owner string) ([]models.Film, error)
	Upsert(ctx context.Context, owner, title string, rating any) (created bool, err error)
	UpdateRating(ctx context.Context, owner string, id int, rating any) error
	Clear(ctx context.Context, owner string) (int64, error)
}

// Config carries the process-wide settings the services need. Passed in
// explicitly rather than read from package state.
type Config struct {
	SigningSecret    string
	TokenTTL         time.Duration
	AnonymousListAll bool
}

type Service struct {
	Authorization
	Films
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, cfg.SigningSecret, cfg.TokenTTL),
		Films:         NewFilmService(repos.Films, cfg.AnonymousListAll),
	}
}
