package ops

import (
	"crypto/rand"
	"math/big"

	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/tarot"
)

// SelectCard picks one card uniformly at random from the deck, skipping
// already-drawn cards until the session has seen the whole deck.
//
// Policy: if the exclusion set covers the deck (>=) or leaves no candidates,
// the session should reset and the draw samples the full deck; otherwise the
// draw samples the remaining candidates. Guarantees every card is seen at
// least once every deck-size draws.
//
// A zero-card deck returns NO_CARD_AVAILABLE. The catalog's emergency-deck
// fallback makes that unreachable; it is an invariant violation, not a
// runtime condition to handle.
func SelectCard(deck *tarot.Deck, excluded map[string]struct{}) (tarot.Card, bool, error) {
	if deck == nil || len(deck.Cards) == 0 {
		return tarot.Card{}, false, errors.NewNoCardAvailable()
	}

	candidates := make([]tarot.Card, 0, len(deck.Cards))
	for _, c := range deck.Cards {
		if _, drawn := excluded[c.ID]; !drawn {
			candidates = append(candidates, c)
		}
	}

	reset := len(excluded) >= len(deck.Cards) || len(candidates) == 0
	pool := candidates
	if reset {
		pool = deck.Cards
	}

	idx, err := randomIndex(len(pool))
	if err != nil {
		return tarot.Card{}, false, errors.NewInternal(err)
	}
	return pool[idx], reset, nil
}

// randomIndex returns a uniform value in [0, n).
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
