package validation

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	appErrors "bioverse-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseAskForm(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		values    url.Values
		wantErr   string
		wantField string
		want      AskForm
	}{
		{
			name:   "question and lang",
			values: url.Values{"question": {"Why do bones weaken?"}, "lang": {"ar"}},
			want:   AskForm{Question: "Why do bones weaken?", Lang: "ar"},
		},
		{
			name:   "lang optional",
			values: url.Values{"question": {"cells"}},
			want:   AskForm{Question: "cells"},
		},
		{
			name:   "question kept verbatim, lang trimmed and lowered",
			values: url.Values{"question": {"  cells  "}, "lang": {" EN "}},
			want:   AskForm{Question: "  cells  ", Lang: "en"},
		},
		{
			name:   "region subtag keeps its case",
			values: url.Values{"question": {"cells"}, "lang": {"ZH-TW"}},
			want:   AskForm{Question: "cells", Lang: "zh-TW"},
		},
		{
			name:   "lowercase region subtag",
			values: url.Values{"question": {"cells"}, "lang": {"pt-br"}},
			want:   AskForm{Question: "cells", Lang: "pt-br"},
		},
		{
			name:   "whitespace question is present",
			values: url.Values{"question": {"   "}, "lang": {"en"}},
			want:   AskForm{Question: "   ", Lang: "en"},
		},
		{
			name:   "long question accepted",
			values: url.Values{"question": {strings.Repeat("a", 5000)}},
			want:   AskForm{Question: strings.Repeat("a", 5000)},
		},
		{
			name:      "missing question",
			values:    url.Values{"lang": {"en"}},
			wantErr:   "question is required",
			wantField: "question",
		},
		{
			name:      "empty question",
			values:    url.Values{"question": {""}},
			wantErr:   "question is required",
			wantField: "question",
		},
		{
			name:      "bad lang",
			values:    url.Values{"question": {"cells"}, "lang": {"english!"}},
			wantErr:   "lang must be a language code",
			wantField: "lang",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := v.ParseAskForm(postForm(tt.values))

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, *form)
				return
			}

			require.Error(t, err)
			assert.Nil(t, form)
			appErr := appErrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, appErrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, "INVALID_FORM", appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantErr)
			assert.Contains(t, appErr.Details, tt.wantField)
		})
	}
}

func TestGetValidator_Shared(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
