package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds transport-level settings.
type RouterConfig struct {
	CORSOrigins  []string
	MaxBodyBytes int64
	Debug        bool
}

// NewRouter builds the gin engine with middleware and routes. gatherer may be nil.
func NewRouter(h *Handler, cfg RouterConfig, gatherer prometheus.Gatherer, log *slog.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		RecoveryMiddleware(log),
		RequestIDMiddleware(),
		LoggerMiddleware(log),
		CORSMiddleware(cfg.CORSOrigins),
		BodyLimitMiddleware(cfg.MaxBodyBytes),
	)

	router.GET("/health", h.Health)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v := router.Group("/api")
	v.POST("/outline", h.Outline)
	v.POST("/article", h.Article)

	return router
}
