package ops

import (
	"database/sql"
	"fmt"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/notify"
)

// PruneInput contains parameters for the Prune operation.
type PruneInput struct {
	Count int // default: cfg.PruneBatchSize
}

// PruneOutput contains the result of the Prune operation.
type PruneOutput struct {
	Pruned    int    `json:"pruned"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// Prune deletes the count chronologically-oldest pulls. Pruning more than
// exists empties the store without error; pruning is a best-effort
// convenience, so callers keep their retry state on failure.
func Prune(database *sql.DB, broker *notify.Broker, cfg *config.Config, input PruneInput) (*PruneOutput, error) {
	count := input.Count
	if count <= 0 {
		count = cfg.PruneBatchSize
	}

	pruned, err := db.PruneOldest(database, count)
	if err != nil {
		return nil, err
	}
	if pruned > 0 {
		publish(broker)
	}

	remaining, err := db.CountPulls(database)
	if err != nil {
		return nil, err
	}

	message := "No history to prune"
	if pruned == 1 {
		message = "Removed the oldest pull"
	} else if pruned > 1 {
		message = fmt.Sprintf("Removed the %d oldest pulls", pruned)
	}

	return &PruneOutput{
		Pruned:    pruned,
		Remaining: remaining,
		Message:   message,
	}, nil
}
