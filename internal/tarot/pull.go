package tarot

import "time"

// Pull is one completed, persisted card draw. Card fields are snapshotted at
// draw time so history stays stable if catalog text later changes. Only the
// note is mutable after creation.
type Pull struct {
	ID          string  `json:"id"`
	PulledAtMS  int64   `json:"pulled_at_ms"`
	CardName    string  `json:"card_name"`
	DeckName    string  `json:"deck_name"`
	CardImage   string  `json:"card_image"`
	CardMeaning string  `json:"card_meaning"`
	Note        *string `json:"note,omitempty"`
}

// PulledAt returns the draw timestamp.
func (p *Pull) PulledAt() time.Time {
	return time.UnixMilli(p.PulledAtMS)
}

// HasNote reports whether the pull carries a non-blank note.
func (p *Pull) HasNote() bool {
	return HasNote(p.Note)
}
