package ops

import (
	"fmt"
	"testing"

	"github.com/seleny/arcana/internal/db"
)

func TestPrune_RemovesOldest(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()

	base := int64(1_700_000_000_000)
	for i := 0; i < 100; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%03d", i), base+int64(i*1000))
	}

	output, err := Prune(database, nil, cfg, PruneInput{Count: 30})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if output.Pruned != 30 {
		t.Errorf("expected 30 pruned, got %d", output.Pruned)
	}
	if output.Remaining != 70 {
		t.Errorf("expected 70 remaining, got %d", output.Remaining)
	}

	// The survivors are exactly the 70 newest.
	items, err := db.ListPulls(database, 100)
	if err != nil {
		t.Fatalf("ListPulls failed: %v", err)
	}
	for _, p := range items {
		if p.PulledAtMS < base+int64(30*1000) {
			t.Fatalf("pull %s should have been pruned", p.ID)
		}
	}
}

func TestPrune_DefaultBatchSize(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()
	cfg.PruneBatchSize = 5

	base := int64(1_700_000_000_000)
	for i := 0; i < 12; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%02d", i), base+int64(i))
	}

	output, err := Prune(database, nil, cfg, PruneInput{})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if output.Pruned != 5 {
		t.Errorf("expected configured batch of 5, got %d", output.Pruned)
	}
	if output.Remaining != 7 {
		t.Errorf("expected 7 remaining, got %d", output.Remaining)
	}
}

func TestPrune_CountBeyondTotal(t *testing.T) {
	database := setupTestDB(t)

	for i := 0; i < 3; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%d", i), 1_700_000_000_000+int64(i))
	}

	output, err := Prune(database, nil, testConfig(), PruneInput{Count: 50})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if output.Pruned != 3 {
		t.Errorf("expected 3 pruned, got %d", output.Pruned)
	}
	if output.Remaining != 0 {
		t.Errorf("expected empty store, got %d remaining", output.Remaining)
	}
}

func TestPrune_EmptyStore(t *testing.T) {
	database := setupTestDB(t)

	output, err := Prune(database, nil, testConfig(), PruneInput{Count: 10})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if output.Pruned != 0 {
		t.Errorf("expected 0 pruned, got %d", output.Pruned)
	}
	if output.Message != "No history to prune" {
		t.Errorf("unexpected message %q", output.Message)
	}
}

func TestPrune_Messages(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)
	insertTestPull(t, database, "pull-b", 1_700_000_000_001)

	output, err := Prune(database, nil, testConfig(), PruneInput{Count: 1})
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if output.Message != "Removed the oldest pull" {
		t.Errorf("unexpected singular message %q", output.Message)
	}
}
