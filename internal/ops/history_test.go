package ops

import (
	"fmt"
	"testing"

	"github.com/seleny/arcana/internal/errors"
)

func TestListHistory_NewestFirst(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()

	base := int64(1_700_000_000_000)
	for i := 0; i < 5; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%02d", i), base+int64(i*1000))
	}

	output, err := ListHistory(database, cfg, ListHistoryInput{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if output.Total != 5 {
		t.Errorf("expected total 5, got %d", output.Total)
	}
	if output.Sort != "pulled_at_desc" {
		t.Errorf("unexpected sort marker %q", output.Sort)
	}
	if len(output.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(output.Items))
	}
	for i := 1; i < len(output.Items); i++ {
		if output.Items[i-1].PulledAtMS < output.Items[i].PulledAtMS {
			t.Fatalf("items not newest-first at index %d", i)
		}
	}
	if output.Items[0].ID != "pull-04" {
		t.Errorf("newest pull should come first, got %s", output.Items[0].ID)
	}
}

func TestListHistory_TruncatesToDisplayLimit(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()
	cfg.HistoryDisplayLimit = 100

	base := int64(1_700_000_000_000)
	for i := 0; i < 150; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%03d", i), base+int64(i))
	}

	output, err := ListHistory(database, cfg, ListHistoryInput{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}

	if len(output.Items) != 100 {
		t.Errorf("expected 100 items, got %d", len(output.Items))
	}
	if output.Total != 150 {
		t.Errorf("total should report full store size 150, got %d", output.Total)
	}
	// Truncation drops the oldest, not the newest.
	if output.Items[0].ID != "pull-149" {
		t.Errorf("expected newest pull first, got %s", output.Items[0].ID)
	}
	if output.Items[99].ID != "pull-050" {
		t.Errorf("expected pull-050 last, got %s", output.Items[99].ID)
	}
}

func TestListHistory_ExplicitLimitCapped(t *testing.T) {
	database := setupTestDB(t)
	cfg := testConfig()
	cfg.HistoryDisplayLimit = 10

	base := int64(1_700_000_000_000)
	for i := 0; i < 20; i++ {
		insertTestPull(t, database, fmt.Sprintf("pull-%02d", i), base+int64(i))
	}

	output, err := ListHistory(database, cfg, ListHistoryInput{Limit: 5})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(output.Items) != 5 {
		t.Errorf("explicit limit 5 should hold, got %d", len(output.Items))
	}

	output, err = ListHistory(database, cfg, ListHistoryInput{Limit: 50})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(output.Items) != 10 {
		t.Errorf("limit above cap should clamp to 10, got %d", len(output.Items))
	}
}

func TestListHistory_EmptyStore(t *testing.T) {
	database := setupTestDB(t)

	output, err := ListHistory(database, testConfig(), ListHistoryInput{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if output.Total != 0 {
		t.Errorf("expected total 0, got %d", output.Total)
	}
	if output.Items == nil {
		t.Error("items should be an empty slice, not nil")
	}
	if len(output.Items) != 0 {
		t.Errorf("expected no items, got %d", len(output.Items))
	}
}

func TestGetPull_NotFound(t *testing.T) {
	database := setupTestDB(t)

	_, err := GetPull(database, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetPull_Found(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	pull, err := GetPull(database, "pull-a")
	if err != nil {
		t.Fatalf("GetPull failed: %v", err)
	}
	if pull.CardName != "The Fool" {
		t.Errorf("unexpected card name %q", pull.CardName)
	}
}
