package repository

import (
	"context"
	"database/sql"

	"filmshelf/internal/models"
)

type Authorization interface {
	CreateUser(ctx context.Context, name, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Films interface {
	// List returns films for the given owner in insertion order. An empty
	// owner returns every film across all owners.
	List(ctx context.Context, owner string) ([]models.Film, error)
	// Upsert creates the (owner, title) entry or updates its rating when a
	// case-insensitive title match already exists. Reports whether a new
	// row was created.
	Upsert(ctx context.Context, owner, title string, rating int) (created bool, err error)
	UpdateRating(ctx context.Context, owner string, id, rating int) error
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}

type Repository struct {
	Auth  Authorization
	Films Films
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:  NewUserRepository(db),
		Films: NewFilmRepository(db),
	}
}
