// Package speech turns answer text into an MP3 file under the public
// directory. Unlike translation, provider failures are returned to the caller.
package speech

import (
	"context"
	"errors"
	"time"

	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/infrastructure/resilience"
	appErrors "bioverse-backend/pkg/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("no text to speak")

// Provider produces MP3 audio for text in a language.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// AudioStore persists audio and returns the path it is served under.
type AudioStore interface {
	Save(audio []byte) (string, error)
}

// Recorder receives call outcomes. *observability.Collector implements it.
type Recorder interface {
	RecordProviderCall(provider string, duration time.Duration, err error)
	RecordAudioFile()
}

// Synthesizer is the speech adapter used by the chat service.
type Synthesizer struct {
	provider Provider
	store    AudioStore
	guard    *resilience.Guard
	recorder Recorder
	logger   *zap.Logger
}

// NewSynthesizer creates a synthesizer. guard and recorder may be nil.
func NewSynthesizer(provider Provider, store AudioStore, guard *resilience.Guard, recorder Recorder, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		provider: provider,
		store:    store,
		guard:    guard,
		recorder: recorder,
		logger:   logger,
	}
}

// Synthesize speaks text in lang and returns the public path of the audio
// file. Errors are *errors.AppError: TIMEOUT when the provider deadline
// passes, UNAVAILABLE while the breaker is open, EXTERNAL for any other
// provider failure and INTERNAL when the file cannot be written.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if text == "" {
		return "", appErrors.NewExternalError("speech", ErrEmptyText).WithCode("SPEECH_EMPTY_TEXT")
	}

	ctx, span := observability.StartSpan(ctx, "speech.Synthesize",
		attribute.String("speech.provider", s.provider.Name()),
		attribute.String("speech.lang", lang),
	)

	start := time.Now()
	var audio []byte
	call := func(ctx context.Context) error {
		var err error
		audio, err = s.provider.Synthesize(ctx, text, lang)
		return err
	}

	var err error
	if s.guard != nil {
		err = s.guard.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if s.recorder != nil {
		s.recorder.RecordProviderCall("speech:"+s.provider.Name(), time.Since(start), err)
	}
	if err != nil {
		observability.EndSpan(span, err)
		s.logger.Error("Speech synthesis failed",
			zap.String("provider", s.provider.Name()),
			zap.String("lang", lang),
			zap.Error(err),
		)
		return "", providerError(err)
	}

	path, err := s.store.Save(audio)
	observability.EndSpan(span, err)
	if err != nil {
		return "", appErrors.NewInternalError("failed to store audio").WithCode("AUDIO_STORE_FAILED").WithCause(err)
	}
	if s.recorder != nil {
		s.recorder.RecordAudioFile()
	}

	s.logger.Debug("Audio synthesized",
		zap.String("path", path),
		zap.Int("bytes", len(audio)),
	)
	return path, nil
}

func providerError(err error) *appErrors.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return appErrors.NewTimeoutError("speech").WithCode("SPEECH_TIMEOUT").WithCause(err)
	case errors.Is(err, resilience.ErrCircuitOpen):
		return appErrors.NewUnavailableError("speech").WithCode("SPEECH_UNAVAILABLE").WithCause(err)
	default:
		return appErrors.NewExternalError("speech", err).WithCode("SPEECH_FAILED")
	}
}
