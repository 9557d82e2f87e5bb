package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bioverse-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Environment = config.Production
	cfg.PublicDir = t.TempDir()
	cfg.LogLevel = "error"
	return cfg
}

func TestInitializeContainer(t *testing.T) {
	cfg := testConfig(t)

	c, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.Same(t, cfg, c.Config)
	assert.Nil(t, c.Tracer)
	assert.Equal(t, 2, c.Graph.NodeCount())

	for _, path := range []string{"/", "/health", "/ready", "/metrics", "/api/graph"} {
		rec := httptest.NewRecorder()
		c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	// runtime collectors share the app registry
	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestInitializeContainer_TracingEnabled(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cfg := testConfig(t)
	cfg.EnableTracing = true
	cfg.OTLPEndpoint = "localhost:4317"

	c, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, c.Tracer)

	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = c.Shutdown(ctx)
}

func TestInitializeContainer_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableMetrics = false

	c, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProviderSelection(t *testing.T) {
	cfg := testConfig(t)
	awsCfg := aws.Config{Region: "us-east-1"}
	client := ProvideHTTPClient(cfg)

	tp, err := ProvideTranslateProvider(cfg, awsCfg, client)
	require.NoError(t, err)
	assert.Equal(t, "google", tp.Name())

	sp, err := ProvideSpeechProvider(cfg, awsCfg, client)
	require.NoError(t, err)
	assert.Equal(t, "google", sp.Name())

	cfg.TranslateProvider = config.ProviderAWS
	cfg.SpeechProvider = config.ProviderPolly

	tp, err = ProvideTranslateProvider(cfg, awsCfg, client)
	require.NoError(t, err)
	assert.Equal(t, "aws", tp.Name())

	sp, err = ProvideSpeechProvider(cfg, awsCfg, client)
	require.NoError(t, err)
	assert.Equal(t, "polly", sp.Name())

	cfg.SpeechProvider = "espeak"
	_, err = ProvideSpeechProvider(cfg, awsCfg, client)
	assert.Error(t, err)
}

func TestProvideAWSConfig_SkippedForGoogle(t *testing.T) {
	awsCfg, err := ProvideAWSConfig(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.Empty(t, awsCfg.Region)
}

func TestCheckBackgroundImage(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	assert.False(t, checkBackgroundImage(dir, logger))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "space_lab_360.jpg", logs.All()[0].ContextMap()["file"])

	require.NoError(t, os.WriteFile(filepath.Join(dir, "space_lab_360.jpg"), []byte("jpg"), 0o644))
	assert.True(t, checkBackgroundImage(dir, logger))
	assert.Equal(t, 1, logs.Len())
}
