// Package validation checks inbound form data with struct tags.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	appErrors "bioverse-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var langCodePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)

// AskForm is the POST / form.
type AskForm struct {
	Question string `form:"question" validate:"required"`
	Lang     string `form:"lang" validate:"omitempty,langcode"`
}

// Sanitize normalises lang to a lowercase primary subtag, leaving any region
// subtag as sent (zh-TW stays zh-TW). The question is passed through as is.
func (f *AskForm) Sanitize() {
	f.Lang = normalizeLang(f.Lang)
}

func normalizeLang(lang string) string {
	lang = strings.TrimSpace(lang)
	primary, region, found := strings.Cut(lang, "-")
	primary = strings.ToLower(primary)
	if !found {
		return primary
	}
	return primary + "-" + region
}

// Sanitizer is implemented by forms that normalise themselves before validation.
type Sanitizer interface {
	Sanitize()
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a validator with the custom rules registered.
func NewValidator() *Validator {
	v := validator.New()

	// report form field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		return langCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate sanitizes i when supported, then checks its struct tags. Failures
// are returned as a validation AppError listing every bad field.
func (v *Validator) Validate(i interface{}) error {
	if s, ok := i.(Sanitizer); ok {
		s.Sanitize()
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.NewValidationError("invalid form").WithCode("INVALID_FORM").WithCause(err)
	}

	fields := make(map[string]interface{}, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		messages = append(messages, msg)
	}
	return appErrors.NewValidationError(strings.Join(messages, "; ")).
		WithCode("INVALID_FORM").
		WithDetails(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "langcode":
		return fmt.Sprintf("%s must be a language code such as en or ar", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// ParseAskForm reads and validates the POST / form.
func (v *Validator) ParseAskForm(r *http.Request) (*AskForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, appErrors.NewValidationError("malformed form").WithCode("MALFORMED_FORM").WithCause(err)
	}
	form := &AskForm{
		Question: r.PostFormValue("question"),
		Lang:     r.PostFormValue("lang"),
	}
	if err := v.Validate(form); err != nil {
		return nil, err
	}
	return form, nil
}
