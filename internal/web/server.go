// Package web serves a small read-only browser for pull history and the
// card reference, plus delete/prune actions on history.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the Arcana web UI.
func NewServer(database *sql.DB, cfg *config.Config, catalog *tarot.Catalog, monitor storage.Monitor, broker *notify.Broker, version, bind string, port int) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	h := &Handlers{
		db:       database,
		cfg:      cfg,
		catalog:  catalog,
		monitor:  monitor,
		broker:   broker,
		renderer: renderer,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/history", http.StatusFound)
	})
	mux.HandleFunc("GET /history", h.HandleHistory)
	mux.HandleFunc("GET /history/{id}", h.HandlePull)
	mux.HandleFunc("POST /history/{id}/delete", h.HandleDelete)
	mux.HandleFunc("POST /history/prune", h.HandlePrune)
	mux.HandleFunc("GET /cards", h.HandleCards)
	mux.HandleFunc("GET /cards/{id}", h.HandleCard)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}
