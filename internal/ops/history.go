package ops

import (
	"database/sql"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/tarot"
)

// ListHistoryInput contains parameters for the ListHistory operation.
type ListHistoryInput struct {
	Limit int // default and cap: cfg.HistoryDisplayLimit
}

// ListHistoryOutput contains the result of the ListHistory operation.
type ListHistoryOutput struct {
	Items []tarot.Pull `json:"items"`
	Total int          `json:"total"`
	Sort  string       `json:"sort"`
}

// ListHistory returns pulls newest-first, truncated to the display limit.
func ListHistory(database *sql.DB, cfg *config.Config, input ListHistoryInput) (*ListHistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > cfg.HistoryDisplayLimit {
		limit = cfg.HistoryDisplayLimit
	}

	items, err := db.ListPulls(database, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []tarot.Pull{}
	}

	total, err := db.CountPulls(database)
	if err != nil {
		return nil, err
	}

	return &ListHistoryOutput{
		Items: items,
		Total: total,
		Sort:  "pulled_at_desc",
	}, nil
}

// GetPull retrieves one pull by ID.
func GetPull(database *sql.DB, id string) (*tarot.Pull, error) {
	return db.GetPull(database, id)
}
