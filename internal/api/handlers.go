package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/usecase"
)

// ArticleProcessor runs the article gate.
type ArticleProcessor interface {
	Process(ctx context.Context, req domain.ArticleRequest) (domain.ArticleResponse, error)
}

// OutlineGenerator serves outline requests.
type OutlineGenerator interface {
	Outline(ctx context.Context, req domain.OutlineRequest) (domain.OutlineResponse, error)
}

// Handler exposes the use cases over HTTP.
type Handler struct {
	gate     ArticleProcessor
	outliner OutlineGenerator
	health   func(ctx context.Context) error
}

// NewHandler wires the use cases; health may be nil.
func NewHandler(gate ArticleProcessor, outliner OutlineGenerator, health func(ctx context.Context) error) *Handler {
	return &Handler{gate: gate, outliner: outliner, health: health}
}

// Outline handles POST /api/outline.
func (h *Handler) Outline(c *gin.Context) {
	var req domain.OutlineRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.outliner.Outline(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Article handles POST /api/article. Every verdict, blocked or not, is a 200.
func (h *Handler) Article(c *gin.Context) {
	var req domain.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.gate.Process(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps client-input and generation failures to 400 and everything else to 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, domain.ErrTopicRequired), errors.Is(err, usecase.ErrGeneration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
