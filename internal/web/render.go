package web

import (
	"bytes"
	stderrors "errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/ops"
	"github.com/seleny/arcana/internal/tarot"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "history", "cards"
}

// HistoryPageData is the template data for the history list page.
type HistoryPageData struct {
	PageData
	Items        []tarot.Pull
	Total        int
	Shown        int
	SuggestPrune bool
	Status       *ops.StatusOutput
}

// PullPageData is the template data for the pull detail page.
type PullPageData struct {
	PageData
	Pull     *tarot.Pull
	NoteHTML template.HTML
}

// CardsPageData is the template data for the card reference page.
type CardsPageData struct {
	PageData
	DeckName string
	Suits    []SuitSection
}

// SuitSection groups cards under a suit heading.
type SuitSection struct {
	Suit  tarot.Suit
	Cards []tarot.Card
}

// CardPageData is the template data for a single card page.
type CardPageData struct {
	PageData
	Card tarot.Card
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"shorten":    shorten,
		"suitName":   func(s tarot.Suit) string { return s.DisplayName() },
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"history": "history.html",
		"pull":    "pull.html",
		"cards":   "cards.html",
		"card":    "card.html",
		"error":   "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders the error page for any error.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	var aErr *errors.ArcanaError
	if !stderrors.As(err, &aErr) {
		aErr = errors.NewInternal(err)
	}

	r.renderPageStatus(w, aErr.Status, "error", ErrorPageData{
		PageData:   PageData{Title: "Error", Version: r.version},
		StatusCode: aErr.Status,
		Message:    aErr.Message,
	})
}

// renderNoteHTML converts a pull note from markdown to HTML. Goldmark skips
// raw HTML by default, so sanitized note text cannot inject markup.
func renderNoteHTML(note *string) template.HTML {
	if !tarot.HasNote(note) {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(*note), &buf); err != nil {
		log.Printf("note render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(*note))
	}
	return template.HTML(buf.String())
}

// formatTime renders a unix-millisecond timestamp for display.
func formatTime(ms int64) string {
	return time.UnixMilli(ms).Local().Format("Jan 2, 2006 3:04 PM")
}

// shorten trims a string for list display. Truncation markers are a
// presentation concern; stored notes stay full length.
func shorten(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
