package tarot

import "sort"

// Suit identifies one of the five card groups in a deck.
type Suit string

const (
	SuitMajor     Suit = "major"
	SuitSwords    Suit = "swords"
	SuitWands     Suit = "wands"
	SuitPentacles Suit = "pentacles"
	SuitCups      Suit = "cups"
)

// Suits returns all suits in display order, major arcana first.
func Suits() []Suit {
	return []Suit{SuitMajor, SuitSwords, SuitWands, SuitPentacles, SuitCups}
}

// sortOrder positions a suit within the catalog-wide ordering.
func (s Suit) sortOrder() int {
	switch s {
	case SuitMajor:
		return 0
	case SuitSwords:
		return 1
	case SuitWands:
		return 2
	case SuitPentacles:
		return 3
	case SuitCups:
		return 4
	default:
		return 5
	}
}

// DisplayName returns the human-readable suit name.
func (s Suit) DisplayName() string {
	switch s {
	case SuitMajor:
		return "Major Arcana"
	case SuitSwords:
		return "Swords"
	case SuitWands:
		return "Wands"
	case SuitPentacles:
		return "Pentacles"
	case SuitCups:
		return "Cups"
	default:
		return string(s)
	}
}

// ParseSuit maps a suit string to its Suit value.
// Returns false for unknown suits.
func ParseSuit(s string) (Suit, bool) {
	switch Suit(s) {
	case SuitMajor, SuitSwords, SuitWands, SuitPentacles, SuitCups:
		return Suit(s), true
	}
	return "", false
}

// Card is an immutable catalog entry. Major arcana are numbered 0-21;
// minor suits run 1-14 where 1=Ace, 11=Page, 12=Knight, 13=Queen, 14=King.
type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ImageName string   `json:"imageName"`
	Suit      Suit     `json:"suit"`
	Number    int      `json:"number"`
	Upright   string   `json:"upright"`
	Reversed  string   `json:"reversed"`
	Keywords  []string `json:"keywords"`
}

// Deck is a named, ordered collection of cards. Loaded once at startup and
// immutable thereafter.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// sortCards orders cards by suit display order, then rank ascending.
func sortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Suit.sortOrder() != b.Suit.sortOrder() {
			return a.Suit.sortOrder() < b.Suit.sortOrder()
		}
		return a.Number < b.Number
	})
}
