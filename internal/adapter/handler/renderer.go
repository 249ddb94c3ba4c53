package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// HomeData holds data for rendering the home page template.
type HomeData struct {
	LoggedIn bool
	Email    string
}

// ErrorData holds data for rendering the error page template.
type ErrorData struct {
	Title   string
	Message string
}

// Renderer renders the demo app's HTML pages.
type Renderer struct {
	home    *template.Template
	errPage *template.Template
}

// NewRenderer creates a renderer using the embedded templates.
func NewRenderer() (*Renderer, error) {
	home, err := template.ParseFS(embeddedTemplates, "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded home.html: %w", err)
	}

	errPage, err := template.ParseFS(embeddedTemplates, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded error.html: %w", err)
	}

	return &Renderer{home: home, errPage: errPage}, nil
}

// Home renders the home page.
func (r *Renderer) Home(data HomeData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.home.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render home: %w", err)
	}
	return buf.Bytes(), nil
}

// Error renders the error page.
func (r *Renderer) Error(data ErrorData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.errPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render error page: %w", err)
	}
	return buf.Bytes(), nil
}
