package ops

import (
	"database/sql"
	"time"

	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/storage"
	"github.com/seleny/arcana/internal/tarot"
)

// DeckSource yields the deck draws are made from.
type DeckSource interface {
	CurrentDeck() *tarot.Deck
}

// Drawer composes the deck catalog, selector, history store, and capacity
// monitor into the single draw operation. It exclusively owns the session
// exclusion set: in-memory, per-launch, never persisted.
//
// Drawer is not safe for concurrent Draw calls; callers that draw from
// multiple goroutines must serialize externally.
type Drawer struct {
	db      *sql.DB
	decks   DeckSource
	monitor storage.Monitor
	broker  *notify.Broker
	drawn   map[string]struct{}
}

// NewDrawer creates a drawer with an empty session.
func NewDrawer(database *sql.DB, decks DeckSource, monitor storage.Monitor, broker *notify.Broker) *Drawer {
	return &Drawer{
		db:      database,
		decks:   decks,
		monitor: monitor,
		broker:  broker,
		drawn:   make(map[string]struct{}),
	}
}

// DrawOutput is the result of one completed draw.
type DrawOutput struct {
	Card           tarot.Card `json:"card"`
	DeckName       string     `json:"deck_name"`
	Pull           tarot.Pull `json:"pull"`
	SessionReset   bool       `json:"session_reset"`
	StorageWarning bool       `json:"storage_warning"`
}

// Draw selects a card, persists a pull snapshotting the card's current
// name, image, and meaning, and reports session-reset and storage-pressure
// flags.
//
// The operation is atomic from the caller's point of view: on a commit
// failure the error is returned, no pull is visible, and the session
// exclusion set is left untouched — never "card shown but not saved".
func (d *Drawer) Draw() (*DrawOutput, error) {
	deck := d.decks.CurrentDeck()

	card, reset, err := SelectCard(deck, d.drawn)
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, err
	}

	pull := tarot.Pull{
		ID:          id,
		PulledAtMS:  time.Now().UnixMilli(),
		CardName:    card.Name,
		DeckName:    deck.Name,
		CardImage:   card.ImageName,
		CardMeaning: card.Upright,
	}

	if err := db.InsertPull(d.db, &pull); err != nil {
		return nil, err
	}

	// Commit succeeded; now the session state may advance.
	if reset {
		d.drawn = make(map[string]struct{})
	}
	d.drawn[card.ID] = struct{}{}

	publish(d.broker)

	warning := false
	if d.monitor != nil {
		warning = d.monitor.IsNearCapacity()
	}

	return &DrawOutput{
		Card:           card,
		DeckName:       deck.Name,
		Pull:           pull,
		SessionReset:   reset,
		StorageWarning: warning,
	}, nil
}

// SessionSize returns how many distinct cards the current session has seen.
func (d *Drawer) SessionSize() int {
	return len(d.drawn)
}

// ResetSession clears the exclusion set.
func (d *Drawer) ResetSession() {
	d.drawn = make(map[string]struct{})
}
