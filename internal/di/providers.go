package di

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"bioverse-backend/internal/config"
	"bioverse-backend/internal/domain"
	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/infrastructure/resilience"
	"bioverse-backend/internal/interfaces/http/rest"
	"bioverse-backend/internal/interfaces/http/rest/handlers"
	"bioverse-backend/internal/interfaces/http/rest/validation"
	"bioverse-backend/internal/interfaces/http/rest/views"
	"bioverse-backend/internal/service/chat"
	"bioverse-backend/internal/service/intent"
	"bioverse-backend/internal/service/speech"
	"bioverse-backend/internal/service/translate"
	appErrors "bioverse-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awspolly "github.com/aws/aws-sdk-go-v2/service/polly"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// metricsNamespace prefixes every Prometheus metric.
const metricsNamespace = "bioverse"

// Logging pairs the root logger with its runtime-adjustable level.
type Logging struct {
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// ProvideLogging builds the root logger.
func ProvideLogging(cfg *config.Config) (*Logging, error) {
	logger, level, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &Logging{Logger: logger, Level: level}, nil
}

// ProvideLogger extracts the logger.
func ProvideLogger(l *Logging) *zap.Logger {
	return l.Logger
}

// ProvideWatcher starts the config watcher and applies log level changes.
func ProvideWatcher(cfg *config.Config, l *Logging) (*config.Watcher, error) {
	w, err := config.NewWatcher(cfg, config.LoadConfig, l.Logger)
	if err != nil {
		return nil, err
	}
	w.OnChange(config.LevelUpdater(l.Level, l.Logger))
	return w, nil
}

// ProvideCollector creates the metrics collector. It always exists so the
// services can record into it; ENABLE_METRICS only controls exposure.
func ProvideCollector() *observability.Collector {
	collector := observability.NewCollector(metricsNamespace)
	collector.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return collector
}

// ProvideTracerProvider installs tracing when enabled. The result is nil otherwise.
func ProvideTracerProvider(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(ctx, cfg.ServiceName, string(cfg.Environment), cfg.OTLPEndpoint)
}

// ProvideAWSConfig loads AWS configuration when an AWS provider is selected.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	if !cfg.UsesAWS() {
		return aws.Config{}, nil
	}
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideHTTPClient creates the client shared by the Google providers.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.ProviderTimeout}
}

func guardConfig(name string, cfg *config.Config) resilience.Config {
	gc := resilience.DefaultConfig(name)
	gc.Timeout = cfg.ProviderTimeout
	gc.RateLimit = cfg.ProviderRateLimit
	gc.Burst = cfg.ProviderBurst
	return gc
}

func newGuard(name string, cfg *config.Config, collector *observability.Collector, logger *zap.Logger) *resilience.Guard {
	guard := resilience.NewGuard(guardConfig(name, cfg), logger, collector.BreakerStateChanged)
	logger.Debug("Provider guard configured",
		zap.String("guard", guard.Name()),
		zap.Duration("timeout", cfg.ProviderTimeout),
		zap.Float64("rate_limit", cfg.ProviderRateLimit),
		zap.Int("burst", cfg.ProviderBurst),
	)
	return guard
}

// ProvideTranslateProvider selects the translation backend.
func ProvideTranslateProvider(cfg *config.Config, awsCfg aws.Config, client *http.Client) (translate.Provider, error) {
	switch cfg.TranslateProvider {
	case config.ProviderGoogle:
		return translate.NewGoogleProvider(translate.WithHTTPClient(client)), nil
	case config.ProviderAWS:
		return translate.NewAWSProvider(awstranslate.NewFromConfig(awsCfg)), nil
	default:
		return nil, fmt.Errorf("unknown translate provider %q", cfg.TranslateProvider)
	}
}

// ProvideSpeechProvider selects the speech backend.
func ProvideSpeechProvider(cfg *config.Config, awsCfg aws.Config, client *http.Client) (speech.Provider, error) {
	switch cfg.SpeechProvider {
	case config.ProviderGoogle:
		return speech.NewGoogleProvider(client, ""), nil
	case config.ProviderPolly:
		return speech.NewPollyProvider(awspolly.NewFromConfig(awsCfg)), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", cfg.SpeechProvider)
	}
}

// ProvideTranslator wraps the provider in a guard.
func ProvideTranslator(
	cfg *config.Config,
	provider translate.Provider,
	collector *observability.Collector,
	logger *zap.Logger,
) *translate.Translator {
	guard := newGuard("translate:"+provider.Name(), cfg, collector, logger)
	return translate.NewTranslator(provider, guard, collector, logger)
}

// ProvideAudioStore creates the public directory store.
func ProvideAudioStore(cfg *config.Config) (*speech.LocalStore, error) {
	store := speech.NewLocalStore(cfg.PublicDir, "/static")
	if err := store.EnsureDir(); err != nil {
		return nil, fmt.Errorf("preparing public directory: %w", err)
	}
	return store, nil
}

// ProvideSynthesizer wraps the provider in a guard.
func ProvideSynthesizer(
	cfg *config.Config,
	provider speech.Provider,
	store *speech.LocalStore,
	collector *observability.Collector,
	logger *zap.Logger,
) *speech.Synthesizer {
	guard := newGuard("speech:"+provider.Name(), cfg, collector, logger)
	return speech.NewSynthesizer(provider, store, guard, collector, logger)
}

// ProvideGraph creates the seeded graph store owned by the container.
func ProvideGraph() *domain.Graph {
	return domain.NewSeededGraph()
}

// ProvideMatcher creates the intent matcher.
func ProvideMatcher(graph *domain.Graph) *intent.Matcher {
	return intent.NewMatcher(graph)
}

// ProvideChatService creates the request orchestrator.
func ProvideChatService(
	graph *domain.Graph,
	matcher *intent.Matcher,
	translator *translate.Translator,
	synthesizer *speech.Synthesizer,
	collector *observability.Collector,
	logger *zap.Logger,
) *chat.Service {
	return chat.NewService(graph, matcher, translator, synthesizer, collector, logger)
}

// ProvideErrorHandler creates the HTTP error handler; development adds detail.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *appErrors.ErrorHandler {
	return appErrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideValidator returns the shared form validator.
func ProvideValidator() *validation.Validator {
	return validation.GetValidator()
}

// ProvideRenderer parses the page templates.
func ProvideRenderer() (*views.Renderer, error) {
	return views.NewRenderer()
}

// ProvideRouter assembles the HTTP router.
func ProvideRouter(
	cfg *config.Config,
	chatHandler *handlers.ChatHandler,
	graphHandler *handlers.GraphHandler,
	errorHandler *appErrors.ErrorHandler,
	collector *observability.Collector,
	logger *zap.Logger,
) *rest.Router {
	checkBackgroundImage(cfg.PublicDir, logger)

	var metrics *observability.Collector
	if cfg.EnableMetrics {
		metrics = collector
	}
	return rest.NewRouter(chatHandler, graphHandler, errorHandler, metrics, rest.Options{
		PublicDir:     cfg.PublicDir,
		ServiceName:   cfg.ServiceName,
		EnableCORS:    cfg.EnableCORS,
		EnableTracing: cfg.EnableTracing,
	}, logger)
}

// checkBackgroundImage warns when the sky texture the page links to is not
// in the public directory. The page still renders; the sky request 404s.
func checkBackgroundImage(publicDir string, logger *zap.Logger) bool {
	name := path.Base(chat.BackgroundImage)
	if _, err := os.Stat(filepath.Join(publicDir, name)); err != nil {
		logger.Warn("Background image missing from public directory",
			zap.String("public_dir", publicDir),
			zap.String("file", name),
		)
		return false
	}
	return true
}

// ProvideHandler builds the chi mux.
func ProvideHandler(router *rest.Router) *chi.Mux {
	return router.Setup()
}
