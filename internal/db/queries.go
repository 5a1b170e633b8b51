package db

import (
	"database/sql"
	"strings"

	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/tarot"
)

// InsertPull stores a new pull in the database.
func InsertPull(database *sql.DB, p *tarot.Pull) error {
	query := `
		INSERT INTO pulls (id, pulled_at_ms, card_name, deck_name, card_image, card_meaning, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := database.Exec(query,
		p.ID, p.PulledAtMS, p.CardName, p.DeckName, p.CardImage, p.CardMeaning,
		toNullString(p.Note),
	)
	if err != nil {
		return errors.NewPersistFailed(err)
	}
	return nil
}

// GetPull retrieves a pull by ID.
func GetPull(database *sql.DB, id string) (*tarot.Pull, error) {
	query := `
		SELECT id, pulled_at_ms, card_name, deck_name, card_image, card_meaning, note
		FROM pulls
		WHERE id = ?
	`
	row := database.QueryRow(query, id)
	p, err := scanPull(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return p, nil
}

// ListPulls returns pulls newest-first, truncated to limit.
// Ties on the millisecond timestamp break on the ULID, which is itself
// time-ordered.
func ListPulls(database *sql.DB, limit int) ([]tarot.Pull, error) {
	query := `
		SELECT id, pulled_at_ms, card_name, deck_name, card_image, card_meaning, note
		FROM pulls
		ORDER BY pulled_at_ms DESC, id DESC
		LIMIT ?
	`
	rows, err := database.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var pulls []tarot.Pull
	for rows.Next() {
		p, err := scanPull(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		pulls = append(pulls, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return pulls, nil
}

// CountPulls returns the total number of stored pulls.
func CountPulls(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM pulls").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// DeletePull removes one pull. Deleting a missing ID is not an error;
// the returned count reports what actually happened.
func DeletePull(database *sql.DB, id string) (int, error) {
	return execDelete(database, "DELETE FROM pulls WHERE id = ?", id)
}

// DeletePulls removes all pulls with the given IDs. An empty ID set is a
// no-op.
func DeletePulls(database *sql.DB, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	return execDelete(database, "DELETE FROM pulls WHERE id IN ("+placeholders+")", args...)
}

// DeleteAllPulls removes every pull.
func DeleteAllPulls(database *sql.DB) (int, error) {
	return execDelete(database, "DELETE FROM pulls")
}

// PruneOldest deletes the count chronologically-oldest pulls. A count at or
// above the total deletes everything.
func PruneOldest(database *sql.DB, count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	query := `
		DELETE FROM pulls WHERE id IN (
			SELECT id FROM pulls
			ORDER BY pulled_at_ms ASC, id ASC
			LIMIT ?
		)
	`
	return execDelete(database, query, count)
}

// SetPullNote updates a pull's note. A nil note clears it.
func SetPullNote(database *sql.DB, id string, note *string) error {
	result, err := database.Exec("UPDATE pulls SET note = ? WHERE id = ?", toNullString(note), id)
	if err != nil {
		return errors.NewPersistFailed(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// execDelete runs a delete statement and returns the affected row count.
func execDelete(database *sql.DB, query string, args ...any) (int, error) {
	result, err := database.Exec(query, args...)
	if err != nil {
		return 0, errors.NewPersistFailed(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(affected), nil
}

// scanner abstracts sql.Row and sql.Rows for scanPull.
type scanner interface {
	Scan(dest ...any) error
}

func scanPull(row scanner) (*tarot.Pull, error) {
	var p tarot.Pull
	var note sql.NullString
	err := row.Scan(&p.ID, &p.PulledAtMS, &p.CardName, &p.DeckName, &p.CardImage, &p.CardMeaning, &note)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		p.Note = &note.String
	}
	return &p, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
