package ops

import (
	"fmt"
	"testing"

	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/errors"
)

func TestDelete_RemovesPull(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	output, err := Delete(database, nil, DeleteInput{ID: "pull-a"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if output.Deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", output.Deleted)
	}

	if _, err := db.GetPull(database, "pull-a"); !errors.Is(err, errors.ErrNotFound) {
		t.Error("deleted pull should be gone")
	}
}

func TestDelete_MissingIDReportsZero(t *testing.T) {
	database := setupTestDB(t)

	output, err := Delete(database, nil, DeleteInput{ID: "no-such-pull"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if output.Deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", output.Deleted)
	}
}

func TestDelete_EmptyIDRejected(t *testing.T) {
	database := setupTestDB(t)

	_, err := Delete(database, nil, DeleteInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestDeleteMany_RemovesSelected(t *testing.T) {
	database := setupTestDB(t)
	for i := 0; i < 5; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%d", i), 1_700_000_000_000+int64(i))
	}

	output, err := DeleteMany(database, nil, DeleteManyInput{IDs: []string{"pull-1", "pull-3", "missing"}})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if output.Deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", output.Deleted)
	}

	count, err := db.CountPulls(database)
	if err != nil {
		t.Fatalf("CountPulls failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 remaining, got %d", count)
	}
}

func TestDeleteMany_EmptySetNoOp(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	output, err := DeleteMany(database, nil, DeleteManyInput{})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if output.Deleted != 0 {
		t.Errorf("empty set should delete nothing, got %d", output.Deleted)
	}

	output, err = DeleteMany(database, nil, DeleteManyInput{IDs: []string{"", ""}})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if output.Deleted != 0 {
		t.Errorf("blank ids should delete nothing, got %d", output.Deleted)
	}

	count, _ := db.CountPulls(database)
	if count != 1 {
		t.Errorf("store should be untouched, got %d pulls", count)
	}
}

func TestDeleteAll(t *testing.T) {
	database := setupTestDB(t)
	for i := 0; i < 4; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%d", i), 1_700_000_000_000+int64(i))
	}

	output, err := DeleteAll(database, nil)
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if output.Deleted != 4 {
		t.Errorf("expected 4 deleted, got %d", output.Deleted)
	}

	// Safe on an already-empty store.
	output, err = DeleteAll(database, nil)
	if err != nil {
		t.Fatalf("DeleteAll on empty store failed: %v", err)
	}
	if output.Deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", output.Deleted)
	}
}
