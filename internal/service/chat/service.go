// Package chat answers a question end to end: translate to English, match an
// intent, translate the answer back, speak it and export the graph.
package chat

import (
	"context"
	"fmt"

	"bioverse-backend/internal/domain"
	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/service/intent"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	// DefaultLang is used when the form omits a language.
	DefaultLang = "en"

	// BackgroundImage is the 360° sky texture served from the public directory.
	BackgroundImage = "/static/space_lab_360.jpg"
)

// Language is one option of the page's language selector.
type Language struct {
	Code string
	Name string
}

// Languages offered by the page.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "ar", Name: "العربية"},
}

// Translator is best-effort: it returns text unchanged on failure.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// Synthesizer writes an audio file and returns its public path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) (string, error)
}

// Metrics receives chat-level measurements. *observability.Collector implements it.
type Metrics interface {
	RecordQuestion(rule, lang string)
	SetGraphSize(nodes, edges int)
}

// ViewModel is everything the page template needs for one response.
type ViewModel struct {
	Answer          string
	Translated      string
	AudioFile       string
	HighlightedNode string
	NewNodes        []string
	Scene           intent.Scene
	Graph           domain.Snapshot
	GraphJSON       string
	Lang            string
	BackgroundImage string
	Languages       []Language
}

// Service orchestrates one chat request.
type Service struct {
	graph       *domain.Graph
	matcher     *intent.Matcher
	translator  Translator
	synthesizer Synthesizer
	metrics     Metrics
	logger      *zap.Logger
}

// NewService creates the chat service. metrics may be nil.
func NewService(
	graph *domain.Graph,
	matcher *intent.Matcher,
	translator Translator,
	synthesizer Synthesizer,
	metrics Metrics,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		graph:       graph,
		matcher:     matcher,
		translator:  translator,
		synthesizer: synthesizer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Home builds the view for a plain page load: no answer, default scene and
// the current graph.
func (s *Service) Home() (*ViewModel, error) {
	vm := &ViewModel{
		Scene:           intent.DefaultScene,
		Lang:            DefaultLang,
		BackgroundImage: BackgroundImage,
		Languages:       Languages,
	}
	if err := s.attachGraph(vm); err != nil {
		return nil, err
	}
	return vm, nil
}

// Ask answers question in lang. Only speech synthesis can fail the request.
func (s *Service) Ask(ctx context.Context, question, lang string) (*ViewModel, error) {
	if lang == "" {
		lang = DefaultLang
	}

	ctx, span := observability.StartSpan(ctx, "chat.Ask", attribute.String("chat.lang", lang))
	var err error
	defer func() { observability.EndSpan(span, err) }()

	questionEN := s.translator.Translate(ctx, question, DefaultLang)

	res := s.matcher.Match(questionEN)
	span.SetAttributes(attribute.String("chat.rule", res.Rule))

	vm := &ViewModel{
		Answer:          res.Answer,
		HighlightedNode: res.Highlighted,
		NewNodes:        res.NewNodes,
		Lang:            lang,
		BackgroundImage: BackgroundImage,
		Languages:       Languages,
	}

	if lang != DefaultLang {
		vm.Translated = s.translator.Translate(ctx, res.Answer, lang)
	}

	spoken := vm.Translated
	if spoken == "" {
		spoken = vm.Answer
	}
	vm.AudioFile, err = s.synthesizer.Synthesize(ctx, spoken, lang)
	if err != nil {
		return nil, err
	}

	vm.Scene = intent.SceneFor(questionEN)

	if err = s.attachGraph(vm); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordQuestion(res.Rule, lang)
	}
	s.logger.Info("Question answered",
		zap.String("rule", res.Rule),
		zap.String("lang", lang),
		zap.Strings("new_nodes", res.NewNodes),
		zap.String("audio", vm.AudioFile),
	)

	return vm, nil
}

// Snapshot exports the current graph.
func (s *Service) Snapshot() domain.Snapshot {
	return s.graph.Snapshot()
}

func (s *Service) attachGraph(vm *ViewModel) error {
	vm.Graph = s.graph.Snapshot()
	raw, err := vm.Graph.JSON()
	if err != nil {
		return fmt.Errorf("exporting graph: %w", err)
	}
	vm.GraphJSON = raw

	if s.metrics != nil {
		s.metrics.SetGraphSize(len(vm.Graph.Nodes), len(vm.Graph.Links))
	}
	return nil
}
