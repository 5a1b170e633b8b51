package ops

import (
	"database/sql"

	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/notify"
	"github.com/seleny/arcana/internal/tarot"
)

// SetNoteInput contains parameters for the SetNote operation.
type SetNoteInput struct {
	ID   string
	Text string
}

// NoteOutput contains the result of a note operation.
type NoteOutput struct {
	ID      string  `json:"id"`
	Note    *string `json:"note,omitempty"`
	HasNote bool    `json:"has_note"`
}

// SetNote sanitizes the text and stores it on the pull. A note that
// sanitizes to empty clears the stored note rather than storing an empty
// string.
func SetNote(database *sql.DB, broker *notify.Broker, input SetNoteInput) (*NoteOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	sanitized := tarot.SanitizeNote(input.Text)

	var note *string
	if sanitized != "" {
		note = &sanitized
	}

	if err := db.SetPullNote(database, input.ID, note); err != nil {
		return nil, err
	}
	publish(broker)

	return &NoteOutput{
		ID:      input.ID,
		Note:    note,
		HasNote: tarot.HasNote(note),
	}, nil
}

// ClearNote removes the note from a pull.
func ClearNote(database *sql.DB, broker *notify.Broker, id string) (*NoteOutput, error) {
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := db.SetPullNote(database, id, nil); err != nil {
		return nil, err
	}
	publish(broker)

	return &NoteOutput{ID: id, HasNote: false}, nil
}
