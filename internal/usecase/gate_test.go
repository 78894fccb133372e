package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ArticleGate/internal/domain"
)

type stubGenerator struct {
	result       domain.GenerationResult
	err          error
	articleCalls int
	outlineCalls int
	lastRequest  domain.ArticleRequest
}

func (s *stubGenerator) GenerateOutline(_ context.Context, req domain.OutlineRequest) (string, error) {
	s.outlineCalls++
	if s.err != nil {
		return "", s.err
	}
	return " 1. " + req.Topic + "\n", nil
}

func (s *stubGenerator) GenerateArticle(_ context.Context, req domain.ArticleRequest) (domain.GenerationResult, error) {
	s.articleCalls++
	s.lastRequest = req
	if s.err != nil {
		return domain.GenerationResult{}, s.err
	}
	return s.result, nil
}

type recordingRepo struct {
	records []domain.VerdictRecord
	err     error
}

func (r *recordingRepo) SaveVerdict(_ context.Context, record domain.VerdictRecord) error {
	r.records = append(r.records, record)
	return r.err
}

type recordingMetrics struct {
	stages   []domain.Stage
	failures int
}

func (m *recordingMetrics) ObserveVerdict(stage domain.Stage, _ domain.GateVerdict) {
	m.stages = append(m.stages, stage)
}

func (m *recordingMetrics) ObserveGenerationFailure() { m.failures++ }

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) PublishAlert(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return errors.New("telegram down")
}

func validRequest() domain.ArticleRequest {
	return domain.ArticleRequest{
		Topic:          "سكري",
		PrimaryKeyword: "سكري",
		Outline:        "...",
		Sources: []string{
			"https://www.cdc.gov/diabetes",
			"https://www.niddk.nih.gov/health-information/diabetes",
			"https://diabetes.ucsf.edu/",
		},
	}
}

func generatedArticle(words int, keywords []string) domain.GenerationResult {
	body := "<h2>مقدمة</h2><p>" + strings.Repeat("كلمة ", words-2) + "</p><p>إخلاء المسؤولية</p>"
	return domain.GenerationResult{
		Article: domain.GeneratedArticle{
			ArticleTitle:       "السكري",
			ArticleHTMLContent: body,
			SecondaryKeywords:  keywords,
		},
		Metadata: domain.Metadata{
			MetaTitle:         "السكري",
			MetaDescription:   "وصف",
			SocialTitle:       "السكري",
			SocialDescription: "وصف",
		},
		Gate: domain.GateVerdict{Reasons: []string{}, ClaimsNeedingCitations: []string{}},
	}
}

func TestArticleGateAcceptsCleanArticle(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{result: generatedArticle(1300, []string{"a", "b", "c", "d"})}
	repo := &recordingRepo{}
	metrics := &recordingMetrics{}
	gate := NewArticleGate(GateDeps{Generator: gen, Repository: repo, Metrics: metrics})

	resp, err := gate.Process(WithRequestID(context.Background(), "req-1"), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Gate.Blocked)
	assert.Empty(t, resp.Gate.Reasons)
	assert.Empty(t, resp.Gate.ClaimsNeedingCitations)
	assert.Equal(t, 1, gen.articleCalls)
	assert.Equal(t, "Arabic", gen.lastRequest.Language)

	require.Len(t, repo.records, 1)
	assert.Equal(t, "req-1", repo.records[0].RequestID)
	assert.Equal(t, domain.StagePostValidation, repo.records[0].Stage)
	assert.NotEmpty(t, repo.records[0].ID)
	assert.Equal(t, []domain.Stage{domain.StagePostValidation}, metrics.stages)
}

func TestArticleGateBlocksFewKeywordsButKeepsPayload(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{result: generatedArticle(1300, []string{"a", "b"})}
	gate := NewArticleGate(GateDeps{Generator: gen})

	resp, err := gate.Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Gate.Blocked)
	require.Len(t, resp.Gate.Reasons, 1)
	assert.Contains(t, resp.Gate.Reasons[0], "insufficient secondary keywords")
	assert.Equal(t, "السكري", resp.Article.ArticleTitle)
	assert.NotEmpty(t, resp.Article.ArticleHTMLContent)
	assert.Equal(t, "وصف", resp.Metadata.MetaDescription)
}

func TestArticleGateTooFewSourcesSkipsGeneration(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	metrics := &recordingMetrics{}
	gate := NewArticleGate(GateDeps{Generator: gen, Metrics: metrics})

	req := validRequest()
	req.Sources = req.Sources[:2]

	resp, err := gate.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, gen.articleCalls)
	assert.True(t, resp.Gate.Blocked)
	require.Len(t, resp.Gate.Reasons, 1)
	assert.Contains(t, resp.Gate.Reasons[0], "between 3 and 6")
	assert.Equal(t, domain.EmptyArticle(), resp.Article)
	assert.Equal(t, domain.Metadata{}, resp.Metadata)
	assert.Equal(t, []domain.Stage{domain.StagePreValidation}, metrics.stages)
}

func TestArticleGateDisallowedSourceNamedVerbatim(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	gate := NewArticleGate(GateDeps{Generator: gen})

	req := validRequest()
	bad := "https://example.com/miracle-cure?x=1"
	req.Sources = append(req.Sources, bad)

	resp, err := gate.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, gen.articleCalls)
	assert.True(t, resp.Gate.Blocked)
	require.Len(t, resp.Gate.Reasons, 1)
	assert.Contains(t, resp.Gate.Reasons[0], bad)
}

func TestArticleGateCollectsAllPreValidationReasons(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	gate := NewArticleGate(GateDeps{Generator: gen})

	resp, err := gate.Process(context.Background(), domain.ArticleRequest{
		Topic:   "  ",
		Sources: []string{"not a url"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, gen.articleCalls)
	require.Len(t, resp.Gate.Reasons, 3)
	assert.Equal(t, "missing required fields: topic, primaryKeyword, outline", resp.Gate.Reasons[0])
	assert.Contains(t, resp.Gate.Reasons[1], "got 1")
	assert.Contains(t, resp.Gate.Reasons[2], "not a url")
}

func TestArticleGateMergesSelfReportedVerdict(t *testing.T) {
	t.Parallel()

	result := generatedArticle(100, []string{"a"})
	result.Article.ArticleHTMLContent += "<p>Metformin reduces glucose.</p>"
	result.Gate = domain.GateVerdict{
		Reasons:                []string{"backend: tone"},
		ClaimsNeedingCitations: []string{"backend: claim about insulin"},
	}
	gate := NewArticleGate(GateDeps{Generator: &stubGenerator{result: result}})

	resp, err := gate.Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Gate.Blocked)
	require.Len(t, resp.Gate.Reasons, 3)
	assert.Equal(t, "backend: tone", resp.Gate.Reasons[0])
	assert.Contains(t, resp.Gate.Reasons[1], "too short")
	assert.Contains(t, resp.Gate.Reasons[2], "insufficient secondary keywords")
	require.Len(t, resp.Gate.ClaimsNeedingCitations, 2)
	assert.Equal(t, "backend: claim about insulin", resp.Gate.ClaimsNeedingCitations[0])
}

func TestArticleGateKeepsSelfReportedBlock(t *testing.T) {
	t.Parallel()

	result := generatedArticle(1300, []string{"a", "b", "c"})
	result.Gate = domain.GateVerdict{Blocked: true}
	gate := NewArticleGate(GateDeps{Generator: &stubGenerator{result: result}})

	resp, err := gate.Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Gate.Blocked)
	assert.NotNil(t, resp.Gate.Reasons)
	assert.NotNil(t, resp.Gate.ClaimsNeedingCitations)
}

func TestArticleGateGenerationFailureIsAnError(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("upstream 429")}
	metrics := &recordingMetrics{}
	repo := &recordingRepo{}
	gate := NewArticleGate(GateDeps{Generator: gen, Metrics: metrics, Repository: repo})

	_, err := gate.Process(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "upstream 429")
	assert.Equal(t, 1, metrics.failures)
	assert.Empty(t, repo.records)
}

func TestArticleGateSideEffectFailuresDoNotChangeVerdict(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	repo := &recordingRepo{err: errors.New("db down")}
	gate := NewArticleGate(GateDeps{Generator: &stubGenerator{}, Repository: repo, Notifier: notifier})

	req := validRequest()
	req.Sources = nil

	resp, err := gate.Process(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Gate.Blocked)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "pre_validation")
	assert.Contains(t, notifier.messages[0], "between 3 and 6")
}

func TestOutliner(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	outliner := NewOutliner(gen, nil)

	_, err := outliner.Outline(context.Background(), domain.OutlineRequest{})
	assert.ErrorIs(t, err, domain.ErrTopicRequired)
	assert.Equal(t, 0, gen.outlineCalls)

	resp, err := outliner.Outline(context.Background(), domain.OutlineRequest{Topic: "ضغط الدم"})
	require.NoError(t, err)
	assert.Equal(t, "1. ضغط الدم", resp.Outline)

	gen.err = errors.New("boom")
	_, err = outliner.Outline(context.Background(), domain.OutlineRequest{Topic: "x"})
	assert.ErrorIs(t, err, ErrGeneration)
}
