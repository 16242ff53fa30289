package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"filmshelf/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, name, username, password_hash FROM users WHERE username = ?`
)

// CreateUser inserts a new user and returns its ID. A username collision
// surfaces as ErrConflict.
func (r *UserRepository) CreateUser(ctx context.Context, name, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, name, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("user %q: %w", username, ErrConflict)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint error.
// The modernc driver exposes no typed error for this, so match on text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
