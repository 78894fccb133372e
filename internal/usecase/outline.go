package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/ports"
)

// Outliner serves outline requests. Outlines are not gated.
type Outliner struct {
	generator ports.ContentGenerator
	logger    *slog.Logger
}

// NewOutliner wires the outline use case.
func NewOutliner(generator ports.ContentGenerator, logger *slog.Logger) *Outliner {
	return &Outliner{generator: generator, logger: logger}
}

// Outline validates the request and asks the generator for an outline.
func (o *Outliner) Outline(ctx context.Context, req domain.OutlineRequest) (domain.OutlineResponse, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return domain.OutlineResponse{}, err
	}
	if o.generator == nil {
		return domain.OutlineResponse{}, fmt.Errorf("%w: generator is not configured", ErrGeneration)
	}

	outline, err := o.generator.GenerateOutline(ctx, req)
	if err != nil {
		if o.logger != nil {
			o.logger.Warn("outline generation failed", "request_id", RequestID(ctx), "error", err)
		}
		return domain.OutlineResponse{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return domain.OutlineResponse{Outline: strings.TrimSpace(outline)}, nil
}
