package ops

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/tarot"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

// fakeMonitor returns fixed readings.
type fakeMonitor struct {
	available int64
	used      int64
	near      bool
}

func (m *fakeMonitor) IsNearCapacity() bool  { return m.near }
func (m *fakeMonitor) AvailableBytes() int64 { return m.available }
func (m *fakeMonitor) UsedBytes() int64      { return m.used }

// fixedDeck serves one deck regardless of catalog state.
type fixedDeck struct {
	deck *tarot.Deck
}

func (f *fixedDeck) CurrentDeck() *tarot.Deck { return f.deck }

// smallDeck builds an n-card deck with predictable IDs.
func smallDeck(n int) *tarot.Deck {
	cards := make([]tarot.Card, n)
	for i := range cards {
		cards[i] = tarot.Card{
			ID:        fmt.Sprintf("major-%02d", i),
			Name:      fmt.Sprintf("Card %d", i),
			ImageName: fmt.Sprintf("major_%02d", i),
			Suit:      tarot.SuitMajor,
			Number:    i,
			Upright:   "upright meaning",
			Reversed:  "reversed meaning",
		}
	}
	return &tarot.Deck{ID: "test", Name: "Test Deck", Cards: cards}
}

// insertTestPull stores a pull with an explicit ID and timestamp.
func insertTestPull(t *testing.T, database *sql.DB, id string, pulledAtMS int64) {
	t.Helper()
	pull := &tarot.Pull{
		ID:          id,
		PulledAtMS:  pulledAtMS,
		CardName:    "The Fool",
		DeckName:    "Test Deck",
		CardImage:   "major_00",
		CardMeaning: "upright meaning",
	}
	if err := db.InsertPull(database, pull); err != nil {
		t.Fatalf("InsertPull failed: %v", err)
	}
}
