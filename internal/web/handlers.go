package web

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/ops"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	catalog  *tarot.Catalog
	monitor  storage.Monitor
	broker   *notify.Broker
	renderer *Renderer
}

// HandleHistory handles GET /history — list pulls newest-first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 0)

	result, err := ops.ListHistory(h.db, h.cfg, ops.ListHistoryInput{Limit: limit})
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	status, err := ops.Status(h.db, h.cfg, h.monitor)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData: PageData{
			Title:   "History",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Items:        result.Items,
		Total:        result.Total,
		Shown:        len(result.Items),
		SuggestPrune: status.SuggestPrune,
		Status:       status,
	})
}

// HandlePull handles GET /history/{id} — pull detail with rendered note.
func (h *Handlers) HandlePull(w http.ResponseWriter, r *http.Request) {
	pull, err := ops.GetPull(h.db, r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "pull", PullPageData{
		PageData: PageData{
			Title:   pull.CardName,
			Version: h.renderer.version,
			Nav:     "history",
		},
		Pull:     pull,
		NoteHTML: renderNoteHTML(pull.Note),
	})
}

// HandleDelete handles POST /history/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.Delete(h.db, h.broker, ops.DeleteInput{ID: r.PathValue("id")}); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// HandlePrune handles POST /history/prune.
func (h *Handlers) HandlePrune(w http.ResponseWriter, r *http.Request) {
	count := 0
	if v := r.FormValue("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			count = n
		}
	}

	if _, err := ops.Prune(h.db, h.broker, h.cfg, ops.PruneInput{Count: count}); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// HandleCards handles GET /cards — the card reference grouped by suit.
func (h *Handlers) HandleCards(w http.ResponseWriter, r *http.Request) {
	sections := make([]SuitSection, 0, len(tarot.Suits()))
	for _, suit := range tarot.Suits() {
		cards := h.catalog.CardsOfSuit(suit)
		if len(cards) == 0 {
			continue
		}
		sections = append(sections, SuitSection{Suit: suit, Cards: cards})
	}

	h.renderer.renderPage(w, "cards", CardsPageData{
		PageData: PageData{
			Title:   "Cards",
			Version: h.renderer.version,
			Nav:     "cards",
		},
		DeckName: h.catalog.CurrentDeck().Name,
		Suits:    sections,
	})
}

// HandleCard handles GET /cards/{id} — one card with meanings.
func (h *Handlers) HandleCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	card, ok := h.catalog.CardByID(id)
	if !ok {
		h.renderer.renderError(w, errors.NewNotFound(id))
		return
	}

	h.renderer.renderPage(w, "card", CardPageData{
		PageData: PageData{
			Title:   card.Name,
			Version: h.renderer.version,
			Nav:     "cards",
		},
		Card: card,
	})
}

// parseIntParam reads a non-negative integer query parameter.
func parseIntParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
