package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorHandler_Handle(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	t.Run("validation error as JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		h.Handle(w, req, NewValidationError("question is required"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Error)
		assert.Equal(t, string(ErrorTypeValidation), resp.Type)
		assert.Equal(t, "question is required", resp.Message)
	})

	t.Run("external error renders HTML for browsers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()

		h.Handle(w, req, NewExternalError("speech", fmt.Errorf("boom")))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "external service &#39;speech&#39; error")
	})

	t.Run("plain error hides details", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		h.Handle(w, req, fmt.Errorf("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")
	})
}

func TestErrorHandler_Middleware(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	wrapped := Wrap(NewValidationError("bad"), "form")
	assert.True(t, IsValidation(wrapped))
	assert.Equal(t, "form: bad", GetAppError(wrapped).Message)

	plain := Wrap(fmt.Errorf("io"), "read")
	assert.True(t, IsType(plain, ErrorTypeInternal))
}
