package ops

import (
	"database/sql"

	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/notify"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of a delete operation.
type DeleteOutput struct {
	Deleted int `json:"deleted"`
}

// Delete removes one pull from history.
func Delete(database *sql.DB, broker *notify.Broker, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	deleted, err := db.DeletePull(database, input.ID)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		publish(broker)
	}
	return &DeleteOutput{Deleted: deleted}, nil
}

// DeleteManyInput contains parameters for the DeleteMany operation.
type DeleteManyInput struct {
	IDs []string
}

// DeleteMany removes the pulls with the given IDs. An empty or absent ID
// set is a no-op, not an error.
func DeleteMany(database *sql.DB, broker *notify.Broker, input DeleteManyInput) (*DeleteOutput, error) {
	ids := make([]string, 0, len(input.IDs))
	for _, id := range input.IDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return &DeleteOutput{Deleted: 0}, nil
	}

	deleted, err := db.DeletePulls(database, ids)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		publish(broker)
	}
	return &DeleteOutput{Deleted: deleted}, nil
}

// DeleteAll removes every pull. Safe on an empty store.
func DeleteAll(database *sql.DB, broker *notify.Broker) (*DeleteOutput, error) {
	deleted, err := db.DeleteAllPulls(database)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		publish(broker)
	}
	return &DeleteOutput{Deleted: deleted}, nil
}
