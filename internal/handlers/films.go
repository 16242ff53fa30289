package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"filmshelf/internal/repository"
	"filmshelf/internal/service"

	"github.com/gin-gonic/gin"
)

// Rating is any: the legacy clients send both numbers and numeric strings,
// and the service does the coercion and range checks.
type upsertFilmRequest struct {
	Title  string `json:"title"`
	Rating any    `json:"rating"`
}

type updateFilmRequest struct {
	Rating any `json:"rating"`
}

// @Summary      List films
// @Description  Authenticated calls return the caller's films; anonymous calls return every film (legacy behavior). Empty result is a 404.
// @Tags         films
// @Produce      json
// @Success      200  {array}   models.Film
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/films [get]
// @Security     BearerAuth
func (h *Handler) listFilms(c *gin.Context) {
	films, err := h.services.List(c.Request.Context(), identity(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, films)
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, message("No films found"))
	default:
		h.serverError(c, "list_films_failed", err, "owner", identity(c))
	}
}

// @Summary      Add or update a film
// @Description  Creates the film, or updates the rating when the caller already has a film with the same title (case-insensitive).
// @Tags         films
// @Accept       json
// @Produce      json
// @Param        body  body  upsertFilmRequest  true  "title, rating"
// @Success      200  {object}  map[string]string  "rating updated"
// @Success      201  {object}  map[string]string  "film created"
// @Failure      400  {object}  map[string]string
// @Failure      403  "missing or invalid token"
// @Router       /api/v1/films [post]
// @Security     BearerAuth
func (h *Handler) upsertFilm(c *gin.Context) {
	var input upsertFilmRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	owner := identity(c)
	created, err := h.services.Upsert(c.Request.Context(), owner, input.Title, input.Rating)
	switch {
	case err == nil && created:
		c.JSON(http.StatusCreated, message("Film added successfully"))
	case err == nil:
		c.JSON(http.StatusOK, message("Film updated successfully"))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, message(err.Error()))
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, message("Film list changed, please retry"))
	default:
		h.serverError(c, "upsert_film_failed", err, "owner", owner)
	}
}

// @Summary      Update a film's rating by id
// @Tags         films
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "film id"
// @Param        body  body  updateFilmRequest  true  "rating"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  "missing or invalid token"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/films/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateFilm(c *gin.Context) {
	// A non-numeric id cannot match any film; same outcome as an id owned
	// by someone else.
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, message("Film not found"))
		return
	}

	var input updateFilmRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	owner := identity(c)
	err = h.services.UpdateRating(c.Request.Context(), owner, id, input.Rating)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, message("Film updated successfully"))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, message(err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, message("Film not found"))
	default:
		h.serverError(c, "update_film_failed", err, "owner", owner, "film_id", id)
	}
}

// @Summary      Delete all of the caller's films
// @Tags         films
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      403  "missing or invalid token"
// @Router       /api/v1/films [delete]
// @Security     BearerAuth
func (h *Handler) clearFilms(c *gin.Context) {
	owner := identity(c)
	n, err := h.services.Clear(c.Request.Context(), owner)
	if err != nil {
		h.serverError(c, "clear_films_failed", err, "owner", owner)
		return
	}
	if h.log != nil {
		h.log.Infow("films_cleared", "owner", owner, "count", n)
	}
	c.JSON(http.StatusOK, message("All films deleted"))
}
