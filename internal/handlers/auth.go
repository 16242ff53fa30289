package handlers

import (
	"errors"
	"net/http"

	"filmshelf/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, message("Invalid request body"))
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "name, username, password"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	_, err := h.services.Register(c.Request.Context(), input.Name, input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, message("User registered successfully"))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, message(err.Error()))
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, message("Username already exists"))
	default:
		h.serverError(c, "register_failed", err, "username", input.Username)
	}
}

// @Summary      Log in and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "username, password"
// @Success      200  {object}  map[string]string  "token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"token": token})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, message(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		// same body for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, message("Invalid credentials"))
	default:
		h.serverError(c, "login_failed", err, "username", input.Username)
	}
}
