package ops

import (
	"database/sql"

	"github.com/seleny/arcana/internal/config"
	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/storage"
)

// StatusOutput reports storage readings and whether pruning is worth
// suggesting. Advisory only; nothing here blocks a draw.
type StatusOutput struct {
	AvailableBytes int64 `json:"available_bytes"`
	UsedBytes      int64 `json:"used_bytes"`
	NearCapacity   bool  `json:"near_capacity"`
	PullCount      int   `json:"pull_count"`
	SoftCap        int   `json:"soft_cap"`
	SuggestPrune   bool  `json:"suggest_prune"`
}

// Status queries the capacity monitor and history size.
func Status(database *sql.DB, cfg *config.Config, monitor storage.Monitor) (*StatusOutput, error) {
	count, err := db.CountPulls(database)
	if err != nil {
		return nil, err
	}

	out := &StatusOutput{
		PullCount: count,
		SoftCap:   cfg.HistorySoftCap,
	}
	if monitor != nil {
		out.AvailableBytes = monitor.AvailableBytes()
		out.UsedBytes = monitor.UsedBytes()
		out.NearCapacity = monitor.IsNearCapacity()
	}
	out.SuggestPrune = out.NearCapacity || count >= cfg.HistorySoftCap

	return out, nil
}
