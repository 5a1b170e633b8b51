// Package ops implements the draw, history, note, and pruning operations on
// top of the history store. Operations are small functions with Input/Output
// structs; the draw orchestrator is the one stateful piece, since it owns the
// per-launch session exclusion set.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/seleny/arcana/internal/notify"
)

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// publish emits a history-changed signal. Safe on a nil broker so embedders
// without observers can pass nothing.
func publish(broker *notify.Broker) {
	if broker != nil {
		broker.Publish()
	}
}
