// Package web serves the browser client and the read-only catalog API.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/overlay"
)

//go:embed assets
var assets embed.FS

// StatusSource reports catalog loading progress.
type StatusSource interface {
	Status() catalog.Status
}

// Config holds the values the client needs to render the page.
type Config struct {
	Title          string
	PageSize       int
	SearchMinChars int
	NewsEntryIndex int
}

// Site holds the parsed templates and rendered help page.
type Site struct {
	cfg    Config
	cache  *catalog.Cache
	status StatusSource

	index *template.Template
	help  []byte
}

// New parses the embedded templates and renders the help page.
func New(cfg Config, cache *catalog.Cache, status StatusSource) (*Site, error) {
	if cfg.Title == "" {
		cfg.Title = "dexview"
	}
	raw, err := assets.ReadFile("assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("reading index template: %w", err)
	}
	index, err := template.New("index").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	md, err := assets.ReadFile("assets/help.md")
	if err != nil {
		return nil, fmt.Errorf("reading help page: %w", err)
	}
	help, err := renderHelp(md, cfg.Title)
	if err != nil {
		return nil, err
	}

	return &Site{cfg: cfg, cache: cache, status: status, index: index, help: help}, nil
}

var helpTemplate = template.Must(template.New("help").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} help</title></head>
<body><main class="help">{{.Body}}</main><p><a href="/">Back to the catalog</a></p></body>
</html>
`))

func renderHelp(source []byte, title string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	var body bytes.Buffer
	if err := md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("rendering help page: %w", err)
	}

	var page bytes.Buffer
	err := helpTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})
	if err != nil {
		return nil, fmt.Errorf("executing help template: %w", err)
	}
	return page.Bytes(), nil
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title          string
		Size           int
		PageSize       int
		SearchMinChars int
		Subviews       []overlay.Subview
	}{s.cfg.Title, s.cache.Size(), s.cfg.PageSize, s.cfg.SearchMinChars, overlay.Subviews}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		log.Printf("web: rendering index: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Site) handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.help)
}

func (s *Site) handleScript(w http.ResponseWriter, r *http.Request) {
	js, err := assets.ReadFile("assets/app.js")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(js)
}
