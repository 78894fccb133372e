package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"ArticleGate/internal/api"
	"ArticleGate/internal/config"
	"ArticleGate/internal/generation"
	"ArticleGate/internal/infrastructure/llm"
	"ArticleGate/internal/infrastructure/metrics"
	"ArticleGate/internal/infrastructure/storage"
	"ArticleGate/internal/infrastructure/telegram"
	"ArticleGate/internal/logging"
	"ArticleGate/internal/ports"
	"ArticleGate/internal/quality"
	"ArticleGate/internal/usecase"
)

const (
	shutdownTimeout   = 15 * time.Second
	startupTimeout    = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	gate     *usecase.ArticleGate
	outliner *usecase.Outliner
	registry *prometheus.Registry
	repo     *storage.PostgresRepository
	db       *sql.DB
}

// drivenAdapters are the optional outbound dependencies of the use cases.
type drivenAdapters struct {
	generator  ports.ContentGenerator
	repository *storage.PostgresRepository
	notifier   ports.Notifier
}

// New builds the application from configuration, connecting the configured adapters.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	var adapters drivenAdapters

	if cfg.OpenAI.APIKey != "" {
		backend, err := llm.NewOpenAIGenerator(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("openai: %w", err)
		}
		adapters.generator = generation.NewClient(backend)
	} else {
		baseLogger.Warn("OPENAI_API_KEY not set, generation requests will fail")
	}

	var db *sql.DB
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repo := storage.NewPostgresRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		adapters.repository = repo
	}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		adapters.notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	a, err := build(cfg, baseLogger, adapters)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	a.db = db
	return a, nil
}

func build(cfg config.Config, baseLogger *slog.Logger, adapters drivenAdapters) (*Application, error) {
	policies, err := buildPolicies(cfg.Gate)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := usecase.GateDeps{
		Generator: adapters.generator,
		Sources:   quality.NewSourceValidator(cfg.Gate.TrustedDomains, cfg.Gate.TrustedSuffixes),
		Structure: quality.NewStructuralChecker(quality.Limits{
			MinWords:             cfg.Gate.MinWords,
			MinSecondaryKeywords: cfg.Gate.MinSecondaryKeywords,
		}),
		Claims:   quality.NewClaimScanner(),
		Policies: policies,
		Bounds:   usecase.SourceBounds{Min: cfg.Gate.MinSources, Max: cfg.Gate.MaxSources},
		Metrics:  metrics.NewPrometheus(registry),
		Notifier: adapters.notifier,
		Logger:   baseLogger.With("component", "gate"),
	}
	if adapters.repository != nil {
		deps.Repository = adapters.repository
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		gate:     usecase.NewArticleGate(deps),
		outliner: usecase.NewOutliner(adapters.generator, baseLogger.With("component", "outline")),
		registry: registry,
		repo:     adapters.repository,
	}, nil
}

// buildPolicies registers the built-in pattern sets, then the configured ones on top.
func buildPolicies(cfg config.GateConfig) (*quality.Registry, error) {
	fallback := cfg.FallbackLanguage
	if fallback == "" {
		fallback = "Arabic"
	}

	reg := quality.NewRegistry(fallback)
	reg.Register(quality.MustCompile(quality.ArabicPatterns()))
	reg.Register(quality.MustCompile(quality.EnglishPatterns()))

	for _, set := range cfg.PatternSets {
		policy, err := quality.Compile(set)
		if err != nil {
			return nil, fmt.Errorf("gate patterns: %w", err)
		}
		reg.Register(policy)
	}

	if _, err := reg.Resolve(fallback); err != nil {
		return nil, fmt.Errorf("fallback language: %w", err)
	}
	return reg, nil
}

// Handler returns the HTTP surface, for listen mode or for a serverless host.
func (a *Application) Handler() http.Handler {
	h := api.NewHandler(a.gate, a.outliner, a.health)
	return api.NewRouter(h, api.RouterConfig{
		CORSOrigins:  a.cfg.Server.CORSOrigins,
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
		Debug:        a.cfg.Logging.Level == "debug",
	}, a.registry, a.logger.With("component", "http"))
}

func (a *Application) health(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Ping(ctx)
}

// Run starts the configured operating mode and blocks until it finishes.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if a.cfg.Server.Mode == config.ModeInvoke {
		return a.Invoke(ctx, stdin, stdout)
	}
	return a.listen(ctx)
}

func (a *Application) listen(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}
}
