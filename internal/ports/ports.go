package ports

import (
	"context"
	"encoding/json"

	"ArticleGate/internal/domain"
)

// StructuredPrompt is one request to the generation backend: two instructions plus the
// JSON shape the answer must conform to.
type StructuredPrompt struct {
	Name   string
	System string
	User   string
	Shape  json.Marshaler
}

// StructuredGenerator produces a JSON object conforming to the prompt's shape.
type StructuredGenerator interface {
	Generate(ctx context.Context, prompt StructuredPrompt) ([]byte, error)
}

// ContentGenerator turns validated requests into outlines and article payloads.
type ContentGenerator interface {
	GenerateOutline(ctx context.Context, req domain.OutlineRequest) (string, error)
	GenerateArticle(ctx context.Context, req domain.ArticleRequest) (domain.GenerationResult, error)
}

// VerdictRepository keeps an audit trail of terminal gate verdicts.
type VerdictRepository interface {
	SaveVerdict(ctx context.Context, record domain.VerdictRecord) error
}

// GateMetrics records verdict outcomes.
type GateMetrics interface {
	ObserveVerdict(stage domain.Stage, verdict domain.GateVerdict)
	ObserveGenerationFailure()
}

// Notifier streams blocked-article alerts to editors.
type Notifier interface {
	PublishAlert(ctx context.Context, message string) error
}
