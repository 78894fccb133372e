package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/ports"
)

// ErrMalformedResult is returned when the backend answer does not match the requested shape.
var ErrMalformedResult = errors.New("malformed generation result")

// Client implements ports.ContentGenerator on top of a structured generation backend.
type Client struct {
	backend ports.StructuredGenerator
}

var _ ports.ContentGenerator = (*Client)(nil)

// NewClient wraps a structured generator.
func NewClient(backend ports.StructuredGenerator) *Client {
	return &Client{backend: backend}
}

// GenerateOutline returns the outline text.
func (c *Client) GenerateOutline(ctx context.Context, req domain.OutlineRequest) (string, error) {
	raw, err := c.generate(ctx, ports.StructuredPrompt{
		Name:   "article_outline",
		System: outlineSystem,
		User:   outlinePrompt(req),
		Shape:  &outlineShape,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Outline *string `json:"outline"`
	}
	if err := decodeStrict(raw, &out); err != nil {
		return "", err
	}
	if out.Outline == nil {
		return "", fmt.Errorf("%w: missing outline", ErrMalformedResult)
	}
	return *out.Outline, nil
}

// GenerateArticle returns the article, its metadata and the backend's self-reported verdict.
func (c *Client) GenerateArticle(ctx context.Context, req domain.ArticleRequest) (domain.GenerationResult, error) {
	raw, err := c.generate(ctx, ports.StructuredPrompt{
		Name:   "gated_article",
		System: articleSystem,
		User:   articlePrompt(req),
		Shape:  &articleShape,
	})
	if err != nil {
		return domain.GenerationResult{}, err
	}

	var out struct {
		Article  *domain.GeneratedArticle `json:"article"`
		Metadata *domain.Metadata         `json:"metadata"`
		Gate     *domain.GateVerdict      `json:"gate"`
	}
	if err := decodeStrict(raw, &out); err != nil {
		return domain.GenerationResult{}, err
	}

	switch {
	case out.Article == nil:
		return domain.GenerationResult{}, fmt.Errorf("%w: missing article", ErrMalformedResult)
	case out.Metadata == nil:
		return domain.GenerationResult{}, fmt.Errorf("%w: missing metadata", ErrMalformedResult)
	case out.Gate == nil:
		return domain.GenerationResult{}, fmt.Errorf("%w: missing gate", ErrMalformedResult)
	}

	return domain.GenerationResult{
		Article:  *out.Article,
		Metadata: *out.Metadata,
		Gate:     *out.Gate,
	}, nil
}

func (c *Client) generate(ctx context.Context, prompt ports.StructuredPrompt) ([]byte, error) {
	if c == nil || c.backend == nil {
		return nil, fmt.Errorf("generation backend is not configured")
	}
	raw, err := c.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", prompt.Name, err)
	}
	return raw, nil
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedResult)
	}
	return nil
}
