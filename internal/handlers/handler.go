package handlers

import (
	"net/http"

	"filmshelf/internal/logger"
	"filmshelf/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		// No token handling on register/login
		api.POST("/register", h.register)
		api.POST("/login", h.login)

		films := api.Group("/films")
		{
			films.GET("", h.optionalIdentity, h.listFilms)
			films.POST("", h.requireIdentity, h.upsertFilm)
			films.PUT("/:id", h.requireIdentity, h.updateFilm)
			films.DELETE("", h.requireIdentity, h.clearFilms)
		}
	}

	return router
}

// message is the error/success body shape shared by every endpoint.
func message(text string) gin.H {
	return gin.H{"message": text}
}

// serverError hides storage and other internals behind a generic 500.
func (h *Handler) serverError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, message("Server error"))
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
