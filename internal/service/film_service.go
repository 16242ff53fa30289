package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"filmshelf/internal/models"
	"filmshelf/internal/repository"
)

// Validation errors surfaced verbatim to clients.
var (
	errTitleRequired  = ValidationError("Title is required")
	errRatingRequired = ValidationError("Rating is required")
	errRatingRange    = ValidationError("Rating must be between 1 and 10")
)

const (
	minRating = 1
	maxRating = 10
)

// FilmService validates input and scopes every repository call by owner.
type FilmService struct {
	films repository.Films
	// anonymousListAll preserves the legacy behavior of returning every
	// user's films to unauthenticated list calls. Named policy flag so the
	// leak can be closed by configuration alone.
	anonymousListAll bool
}

func NewFilmService(films repository.Films, anonymousListAll bool) *FilmService {
	return &FilmService{films: films, anonymousListAll: anonymousListAll}
}

var _ Films = (*FilmService)(nil)

// List returns the owner's films, or every film for anonymous callers when
// the legacy policy allows it. Zero films is a not-found condition, not an
// empty list.
func (s *FilmService) List(ctx context.Context, owner string) ([]models.Film, error) {
	if owner == "" && !s.anonymousListAll {
		return nil, repository.ErrNotFound
	}
	films, err := s.films.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, repository.ErrNotFound
	}
	return films, nil
}

// Upsert adds the film or updates the rating of an existing entry matched
// case-insensitively on title. Reports whether a new entry was created.
func (s *FilmService) Upsert(ctx context.Context, owner, title string, rating any) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, errTitleRequired
	}
	n, err := coerceRating(rating)
	if err != nil {
		return false, err
	}
	return s.films.Upsert(ctx, owner, title, n)
}

// UpdateRating changes the rating of the owner's film with the given id.
func (s *FilmService) UpdateRating(ctx context.Context, owner string, id int, rating any) error {
	n, err := coerceRating(rating)
	if err != nil {
		return err
	}
	return s.films.UpdateRating(ctx, owner, id, n)
}

// Clear removes every film owned by owner; zero matches is fine.
func (s *FilmService) Clear(ctx context.Context, owner string) (int64, error) {
	return s.films.DeleteByOwner(ctx, owner)
}

// coerceRating accepts the rating as it arrives from JSON (number or numeric
// string) and requires a whole number within range. Missing and blank values
// are reported separately from out-of-range ones, matching the public API.
func coerceRating(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, errRatingRequired
	case float64:
		return checkRating(n)
	case int:
		return checkRating(float64(n))
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, errRatingRequired
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, errRatingRange
		}
		return checkRating(f)
	default:
		return 0, errRatingRange
	}
}

func checkRating(f float64) (int, error) {
	if f != math.Trunc(f) || f < minRating || f > maxRating {
		return 0, errRatingRange
	}
	return int(f), nil
}
