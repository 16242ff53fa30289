// Package gateway is the edge in front of the films service: it forwards
// /api/v1/* to the backend untouched and serves the static web UI. No
// business logic lives here.
package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"filmshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gateway router for the given upstream films service
// URL and static asset directory.
func NewRouter(filmsServiceURL, staticDir string, log *logger.Logger) (*gin.Engine, error) {
	target, err := url.Parse(filmsServiceURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		if log != nil {
			log.Errorw("proxy_upstream_error", "path", r.URL.Path, "err", err)
		}
		w.WriteHeader(http.StatusBadGateway)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLog(log))

	// Method, path, and body pass through unchanged; the backend owns the
	// /api/v1 prefix.
	router.Any("/api/v1/*any", gin.WrapH(proxy))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything else is the static UI.
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))

	return router, nil
}

// requestLog is a minimal access log, standing in for the original's morgan.
func requestLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log != nil {
			log.Infow("request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"duration", time.Since(start),
			)
		}
	}
}
