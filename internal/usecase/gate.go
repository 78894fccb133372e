package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/ports"
	"ArticleGate/internal/quality"
)

// ErrGeneration marks failures of the generation backend. They are never folded into a verdict.
var ErrGeneration = errors.New("generation failed")

const (
	DefaultMinSources = 3
	DefaultMaxSources = 6
)

// SourceBounds is the inclusive range for the number of sources in a request.
type SourceBounds struct {
	Min int
	Max int
}

// GateDeps wires the checkers and driven adapters into the gate.
type GateDeps struct {
	Generator  ports.ContentGenerator
	Sources    *quality.SourceValidator
	Structure  *quality.StructuralChecker
	Claims     *quality.ClaimScanner
	Policies   *quality.Registry
	Bounds     SourceBounds
	Repository ports.VerdictRepository
	Metrics    ports.GateMetrics
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// ArticleGate validates a request, generates the article and folds every finding into one verdict.
//
// Flow: pre-validation, then generation, then post-validation. A request that fails
// pre-validation never reaches the generator.
type ArticleGate struct {
	generator  ports.ContentGenerator
	sources    *quality.SourceValidator
	structure  *quality.StructuralChecker
	claims     *quality.ClaimScanner
	policies   *quality.Registry
	bounds     SourceBounds
	repository ports.VerdictRepository
	metrics    ports.GateMetrics
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewArticleGate fills missing checkers with their defaults.
func NewArticleGate(deps GateDeps) *ArticleGate {
	g := &ArticleGate{
		generator:  deps.Generator,
		sources:    deps.Sources,
		structure:  deps.Structure,
		claims:     deps.Claims,
		policies:   deps.Policies,
		bounds:     deps.Bounds,
		repository: deps.Repository,
		metrics:    deps.Metrics,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
	if g.sources == nil {
		g.sources = quality.NewSourceValidator(nil, nil)
	}
	if g.structure == nil {
		g.structure = quality.NewStructuralChecker(quality.DefaultLimits())
	}
	if g.claims == nil {
		g.claims = quality.NewClaimScanner()
	}
	if g.policies == nil {
		g.policies = quality.DefaultRegistry()
	}
	if g.bounds.Min <= 0 {
		g.bounds.Min = DefaultMinSources
	}
	if g.bounds.Max < g.bounds.Min {
		g.bounds.Max = DefaultMaxSources
	}
	return g
}

// Process runs the gate for one request. Blocked verdicts are returned as normal responses;
// the error is non-nil only when generation itself fails.
func (g *ArticleGate) Process(ctx context.Context, req domain.ArticleRequest) (domain.ArticleResponse, error) {
	req = req.Normalize()
	requestID := RequestID(ctx)

	if pre := g.preValidate(req); !pre.Empty() {
		verdict := domain.NewVerdict()
		verdict.Merge(pre)
		verdict.Finalize()
		g.warn("blocked before generation", "request_id", requestID, "reasons", verdict.Reasons)
		g.record(ctx, requestID, req, domain.StagePreValidation, verdict)
		return domain.ArticleResponse{
			Article: domain.EmptyArticle(),
			Gate:    verdict,
		}, nil
	}

	policy, err := g.policies.Resolve(req.Language)
	if err != nil {
		return domain.ArticleResponse{}, fmt.Errorf("resolve patterns: %w", err)
	}

	if g.generator == nil {
		return domain.ArticleResponse{}, fmt.Errorf("%w: generator is not configured", ErrGeneration)
	}

	g.debug("generating article", "request_id", requestID, "topic", req.Topic, "language", req.Language)
	result, err := g.generator.GenerateArticle(ctx, req)
	if err != nil {
		if g.metrics != nil {
			g.metrics.ObserveGenerationFailure()
		}
		g.warn("generation failed", "request_id", requestID, "error", err)
		return domain.ArticleResponse{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	verdict := result.Gate
	verdict.Merge(g.structure.Check(result.Article, policy))
	verdict.Merge(g.claims.Scan(result.Article.ArticleHTMLContent, policy))
	verdict.Finalize()

	if result.Article.SecondaryKeywords == nil {
		result.Article.SecondaryKeywords = []string{}
	}

	g.info("article gated", "request_id", requestID, "blocked", verdict.Blocked,
		"reasons", len(verdict.Reasons), "claims", len(verdict.ClaimsNeedingCitations))
	g.record(ctx, requestID, req, domain.StagePostValidation, verdict)

	return domain.ArticleResponse{
		Article:  result.Article,
		Metadata: result.Metadata,
		Gate:     verdict,
	}, nil
}

func (g *ArticleGate) preValidate(req domain.ArticleRequest) domain.Findings {
	var findings domain.Findings

	if missing := req.MissingFields(); len(missing) > 0 {
		findings.Reasons = append(findings.Reasons,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if n := len(req.Sources); n < g.bounds.Min || n > g.bounds.Max {
		findings.Reasons = append(findings.Reasons,
			fmt.Sprintf("sources must contain between %d and %d URLs, got %d", g.bounds.Min, g.bounds.Max, n))
	}

	if rejected := g.sources.Disallowed(req.Sources); len(rejected) > 0 {
		findings.Reasons = append(findings.Reasons,
			fmt.Sprintf("sources not on the trusted allow-list: %s", strings.Join(rejected, ", ")))
	}

	return findings
}

func (g *ArticleGate) record(ctx context.Context, requestID string, req domain.ArticleRequest, stage domain.Stage, verdict domain.GateVerdict) {
	if g.metrics != nil {
		g.metrics.ObserveVerdict(stage, verdict)
	}

	if g.repository != nil {
		err := g.repository.SaveVerdict(ctx, domain.VerdictRecord{
			ID:             uuid.NewString(),
			RequestID:      requestID,
			Topic:          req.Topic,
			PrimaryKeyword: req.PrimaryKeyword,
			Language:       req.Language,
			Stage:          stage,
			Verdict:        verdict,
		})
		if err != nil {
			g.warn("save verdict", "request_id", requestID, "error", err)
		}
	}

	if g.notifier != nil && verdict.Blocked {
		if err := g.notifier.PublishAlert(ctx, buildAlertMessage(req, stage, verdict)); err != nil {
			g.warn("publish alert", "request_id", requestID, "error", err)
		}
	}
}

func buildAlertMessage(req domain.ArticleRequest, stage domain.Stage, verdict domain.GateVerdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Article blocked (%s)\nTopic: %s\nKeyword: %s\n", stage, req.Topic, req.PrimaryKeyword)
	for _, reason := range verdict.Reasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}
	for _, claim := range verdict.ClaimsNeedingCitations {
		fmt.Fprintf(&b, "- %s\n", claim)
	}
	return b.String()
}

func (g *ArticleGate) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *ArticleGate) info(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Info(msg, args...)
	}
}

func (g *ArticleGate) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
