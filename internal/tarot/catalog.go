package tarot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
)

//go:embed decks.json
var decksData []byte

// Expected deck composition: 22 major arcana plus four suits of 14.
const (
	majorCardCount = 22
	suitCardCount  = 14
	fullDeckSize   = 78
)

// Catalog holds the loaded deck and exposes read-only lookup.
// Loading never fails from the caller's point of view: any read, parse, or
// validation failure falls back to a built-in single-card emergency deck,
// so downstream code can rely on a non-empty, structurally valid deck.
type Catalog struct {
	deck    *Deck
	byID    map[string]Card
	ordered []Card
}

// decksFile mirrors the bundled deck-definition resource. Only the first
// deck is read; multi-deck selection is a future feature.
type decksFile struct {
	Decks []Deck `json:"decks"`
}

// NewCatalog loads the embedded deck definition.
func NewCatalog() *Catalog {
	return newCatalogFromBytes(decksData)
}

func newCatalogFromBytes(data []byte) *Catalog {
	deck, err := parseDeck(data)
	if err != nil {
		log.Printf("deck load failed, using emergency deck: %v", err)
		deck = emergencyDeck()
	}

	byID := make(map[string]Card, len(deck.Cards))
	for _, c := range deck.Cards {
		byID[c.ID] = c
	}

	ordered := make([]Card, len(deck.Cards))
	copy(ordered, deck.Cards)
	sortCards(ordered)

	return &Catalog{deck: deck, byID: byID, ordered: ordered}
}

// parseDeck decodes and validates the first deck in the definition.
func parseDeck(data []byte) (*Deck, error) {
	var file decksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse deck definition: %w", err)
	}
	if len(file.Decks) == 0 {
		return nil, fmt.Errorf("deck definition contains no decks")
	}

	deck := file.Decks[0]
	if err := validateDeck(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// validateDeck checks the structural invariants of a full deck.
func validateDeck(deck *Deck) error {
	if len(deck.Cards) == 0 {
		return fmt.Errorf("deck %q is empty", deck.Name)
	}
	if len(deck.Cards) != fullDeckSize {
		return fmt.Errorf("deck %q has %d cards, want %d", deck.Name, len(deck.Cards), fullDeckSize)
	}

	counts := make(map[Suit]int)
	for i, c := range deck.Cards {
		if c.ID == "" || c.Name == "" || c.ImageName == "" || c.Upright == "" || c.Reversed == "" {
			return fmt.Errorf("card %d (%q) has missing fields", i, c.Name)
		}
		if _, ok := ParseSuit(string(c.Suit)); !ok {
			return fmt.Errorf("card %q has unknown suit %q", c.Name, c.Suit)
		}
		counts[c.Suit]++
	}

	if counts[SuitMajor] != majorCardCount {
		return fmt.Errorf("deck %q has %d major arcana, want %d", deck.Name, counts[SuitMajor], majorCardCount)
	}
	for _, s := range []Suit{SuitSwords, SuitWands, SuitPentacles, SuitCups} {
		if counts[s] != suitCardCount {
			return fmt.Errorf("deck %q has %d %s, want %d", deck.Name, counts[s], s, suitCardCount)
		}
	}
	return nil
}

// emergencyDeck is the minimal fallback used when the bundled definition is
// missing or invalid. One fully populated card beats a crash downstream.
func emergencyDeck() *Deck {
	return &Deck{
		ID:   "fallback",
		Name: "Emergency Deck",
		Cards: []Card{
			{
				ID:        "major-00",
				Name:      "The Fool",
				ImageName: "major_00",
				Suit:      SuitMajor,
				Number:    0,
				Upright:   "New beginnings, optimism, trust in life. The universe is ready to support your journey.",
				Reversed:  "Recklessness, taken advantage of, inconsideration. Pause before leaping.",
				Keywords:  []string{"beginnings", "innocence", "spontaneity", "free spirit"},
			},
		},
	}
}

// CurrentDeck returns the loaded deck.
func (c *Catalog) CurrentDeck() *Deck {
	return c.deck
}

// AllCards returns every card ordered by suit display order, then rank.
func (c *Catalog) AllCards() []Card {
	out := make([]Card, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// CardsOfSuit returns the cards of one suit, rank ascending.
func (c *Catalog) CardsOfSuit(suit Suit) []Card {
	var out []Card
	for _, card := range c.ordered {
		if card.Suit == suit {
			out = append(out, card)
		}
	}
	return out
}

// CardByID looks up a card by its stable identifier.
func (c *Catalog) CardByID(id string) (Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}
