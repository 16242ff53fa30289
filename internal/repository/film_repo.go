package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"filmshelf/internal/models"
)

type FilmRepository struct {
	db *sql.DB
}

func NewFilmRepository(db *sql.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

var _ Films = (*FilmRepository)(nil)

const (
	// The UNIQUE(owner, title_key) index makes the insert-or-nothing step
	// atomic; created/updated is decided by rows affected, never by a
	// read-then-write at the application layer.
	insertFilmSQL = `
		INSERT INTO films (owner, title, title_key, rating)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner, title_key) DO NOTHING
	`
	updateRatingByKeySQL  = `UPDATE films SET rating = ? WHERE owner = ? AND title_key = ?`
	updateRatingByIDSQL   = `UPDATE films SET rating = ? WHERE id = ? AND owner = ?`
	selectFilmsSQL        = `SELECT id, title, rating, owner FROM films ORDER BY id ASC`
	selectFilmsByOwnerSQL = `SELECT id, title, rating, owner FROM films WHERE owner = ? ORDER BY id ASC`
	deleteByOwnerSQL      = `DELETE FROM films WHERE owner = ?`
)

// TitleKey normalizes a title for the per-owner uniqueness constraint.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// List returns films in id (insertion) order, scoped to owner unless owner
// is empty.
func (r *FilmRepository) List(ctx context.Context, owner string) ([]models.Film, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if owner == "" {
		rows, err = r.db.QueryContext(ctx, selectFilmsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, selectFilmsByOwnerSQL, owner)
	}
	if err != nil {
		return nil, fmt.Errorf("select films: %w", err)
	}
	defer rows.Close()

	out := make([]models.Film, 0, 16)
	for rows.Next() {
		var f models.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Rating, &f.Owner); err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	return out, nil
}

// Upsert inserts a new film or, when the normalized key already exists for
// the owner, updates the rating of the existing row. The stored title keeps
// its original casing on update.
func (r *FilmRepository) Upsert(ctx context.Context, owner, title string, rating int) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertFilmSQL, owner, title, TitleKey(title), rating)
	if err != nil {
		return false, fmt.Errorf("insert film %q for %q: %w", title, owner, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert film rows affected: %w", err)
	}
	if inserted == 1 {
		return true, nil
	}

	res, err = r.db.ExecContext(ctx, updateRatingByKeySQL, rating, owner, TitleKey(title))
	if err != nil {
		return false, fmt.Errorf("update film %q for %q: %w", title, owner, err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update film rows affected: %w", err)
	}
	if updated == 0 {
		// The row existed during the insert but vanished before the
		// update; a concurrent delete won. Retryable.
		return false, fmt.Errorf("upsert film %q for %q: %w", title, owner, ErrConflict)
	}
	return false, nil
}

// UpdateRating changes the rating of the film with the given id, but only
// when it belongs to owner. A wrong id and another owner's id are both
// ErrNotFound.
func (r *FilmRepository) UpdateRating(ctx context.Context, owner string, id, rating int) error {
	res, err := r.db.ExecContext(ctx, updateRatingByIDSQL, rating, id, owner)
	if err != nil {
		return fmt.Errorf("update film %d for %q: %w", id, owner, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update film rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByOwner removes every film owned by owner and returns the count.
func (r *FilmRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteByOwnerSQL, owner)
	if err != nil {
		return 0, fmt.Errorf("delete films for %q: %w", owner, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete films rows affected: %w", err)
	}
	return n, nil
}
