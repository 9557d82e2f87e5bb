package handlers

import (
	"context"
	"net/http"

	"bioverse-backend/internal/domain"
	"bioverse-backend/internal/interfaces/http/rest/validation"
	"bioverse-backend/internal/interfaces/http/rest/views"
	"bioverse-backend/internal/service/chat"
	appErrors "bioverse-backend/pkg/errors"

	"go.uber.org/zap"
)

// ChatService is the part of chat.Service the handlers need.
type ChatService interface {
	Home() (*chat.ViewModel, error)
	Ask(ctx context.Context, question, lang string) (*chat.ViewModel, error)
	Snapshot() domain.Snapshot
}

// ChatHandler serves the chatbot page.
type ChatHandler struct {
	service   ChatService
	renderer  *views.Renderer
	validator *validation.Validator
	errors    *appErrors.ErrorHandler
	logger    *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	service ChatService,
	renderer *views.Renderer,
	validator *validation.Validator,
	errorHandler *appErrors.ErrorHandler,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		service:   service,
		renderer:  renderer,
		validator: validator,
		errors:    errorHandler,
		logger:    logger,
	}
}

// Home handles GET /
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request) {
	vm, err := h.service.Home()
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.render(w, r, vm)
}

// Ask handles POST /
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	form, err := h.validator.ParseAskForm(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	vm, err := h.service.Ask(r.Context(), form.Question, form.Lang)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.render(w, r, vm)
}

func (h *ChatHandler) render(w http.ResponseWriter, r *http.Request, vm *chat.ViewModel) {
	if err := h.renderer.Page(w, http.StatusOK, vm); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		h.errors.Handle(w, r, appErrors.NewInternalError("failed to render page").WithCause(err))
	}
}
