// Package translate wraps an external translation provider with a
// best-effort policy: any failure yields the original text.
package translate

import (
	"context"
	"time"

	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/infrastructure/resilience"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SourceAuto asks the provider to detect the source language.
const SourceAuto = "auto"

// Provider performs a single translation call.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// CallRecorder receives provider call outcomes. *observability.Collector implements it.
type CallRecorder interface {
	RecordProviderCall(provider string, duration time.Duration, err error)
}

// Translator is the best-effort adapter used by the chat service.
type Translator struct {
	provider Provider
	guard    *resilience.Guard
	recorder CallRecorder
	logger   *zap.Logger
}

// NewTranslator creates a translator. recorder may be nil.
func NewTranslator(provider Provider, guard *resilience.Guard, recorder CallRecorder, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{
		provider: provider,
		guard:    guard,
		recorder: recorder,
		logger:   logger,
	}
}

// Translate returns text translated into target, or text unchanged when the
// provider fails for any reason. It never returns an error.
func (t *Translator) Translate(ctx context.Context, text, target string) string {
	if text == "" {
		return text
	}

	ctx, span := observability.StartSpan(ctx, "translate.Translate",
		attribute.String("translate.provider", t.provider.Name()),
		attribute.String("translate.target", target),
	)

	start := time.Now()
	var out string
	call := func(ctx context.Context) error {
		var err error
		out, err = t.provider.Translate(ctx, text, SourceAuto, target)
		return err
	}

	var err error
	if t.guard != nil {
		err = t.guard.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err == nil && out == "" {
		err = ErrEmptyTranslation
	}

	if t.recorder != nil {
		t.recorder.RecordProviderCall("translate:"+t.provider.Name(), time.Since(start), err)
	}
	observability.EndSpan(span, err)

	if err != nil {
		t.logger.Warn("Translation failed, passing text through",
			zap.String("provider", t.provider.Name()),
			zap.String("target", target),
			zap.Error(err),
		)
		return text
	}
	return out
}
