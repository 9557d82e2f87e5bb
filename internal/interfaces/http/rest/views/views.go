// Package views renders the chatbot page.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"bioverse-backend/internal/service/chat"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// nodeX spreads new-node entities along the x axis: -1, 1, 3, ...
	"nodeX": func(i int) int { return i*2 - 1 },
}

// Renderer executes the embedded page template.
type Renderer struct {
	page *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	page, err := template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{page: page}, nil
}

// MustRenderer is NewRenderer for package initialisation; the templates are
// embedded so a parse error is a build defect.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

type pageData struct {
	*chat.ViewModel
	// GraphJSON is produced by encoding/json, which escapes <, > and &, so it
	// is safe inside a script element.
	GraphJSON template.JS
}

// Page writes vm as a complete HTML page. The template runs into a buffer
// first so a failure never leaves a half-written response.
func (r *Renderer) Page(w http.ResponseWriter, status int, vm *chat.ViewModel) error {
	var buf bytes.Buffer
	data := pageData{ViewModel: vm, GraphJSON: template.JS(vm.GraphJSON)}
	if err := r.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
