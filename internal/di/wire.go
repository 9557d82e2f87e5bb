//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"bioverse-backend/internal/config"
	"bioverse-backend/internal/interfaces/http/rest/handlers"
	"bioverse-backend/internal/service/chat"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogging,
	ProvideLogger,
	ProvideWatcher,
	ProvideCollector,
	ProvideTracerProvider,
	ProvideAWSConfig,
	ProvideHTTPClient,
	ProvideTranslateProvider,
	ProvideSpeechProvider,
	ProvideTranslator,
	ProvideAudioStore,
	ProvideSynthesizer,
	ProvideGraph,
	ProvideMatcher,
	ProvideChatService,
	ProvideErrorHandler,
	ProvideValidator,
	ProvideRenderer,
	handlers.NewChatHandler,
	handlers.NewGraphHandler,
	wire.Bind(new(handlers.ChatService), new(*chat.Service)),
	ProvideRouter,
	ProvideHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
