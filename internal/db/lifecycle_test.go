package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/tarot"
)

func TestOpen_FreshStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if store.InMemory {
		t.Error("fresh open should be persistent")
	}
	if store.Path != filepath.Join(tmpDir, StoreFileName) {
		t.Errorf("unexpected store path %q", store.Path)
	}

	count, err := CountPulls(store.DB)
	if err != nil {
		t.Fatalf("CountPulls failed: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh store should be empty, got %d", count)
	}
}

func TestOpen_RecoversFromCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, StoreFileName)
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite database at all"), 0600); err != nil {
		t.Fatalf("write garbage failed: %v", err)
	}

	store, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open should recover, got: %v", err)
	}
	defer store.Close()

	if store.InMemory {
		t.Error("recovery should land on the persistent tier")
	}

	// The recovered store is fresh and writable.
	count, err := CountPulls(store.DB)
	if err != nil {
		t.Fatalf("recovered store unusable: %v", err)
	}
	if count != 0 {
		t.Errorf("recovered store should be empty, got %d", count)
	}
	pull := &tarot.Pull{
		ID: "pull-a", PulledAtMS: 1, CardName: "The Star", DeckName: "d",
		CardImage: "major_17", CardMeaning: "hope",
	}
	if err := InsertPull(store.DB, pull); err != nil {
		t.Errorf("recovered store should accept writes: %v", err)
	}
}

func TestOpenWith_FallsBackToMemory(t *testing.T) {
	failing := func(string) (*sql.DB, error) {
		return nil, fmt.Errorf("persistent tier unavailable")
	}

	store, err := openWith(t.TempDir(), failing, openInMemory)
	if err != nil {
		t.Fatalf("openWith failed: %v", err)
	}
	defer store.Close()

	if !store.InMemory {
		t.Fatal("expected in-memory fallback")
	}
	if store.Path != "" {
		t.Errorf("in-memory store should have no path, got %q", store.Path)
	}

	// Full read/write round trip against the fallback.
	pull := &tarot.Pull{
		ID: "pull-a", PulledAtMS: 42, CardName: "The Moon", DeckName: "d",
		CardImage: "major_18", CardMeaning: "illusion",
	}
	if err := InsertPull(store.DB, pull); err != nil {
		t.Fatalf("insert on fallback failed: %v", err)
	}
	pulls, err := ListPulls(store.DB, 10)
	if err != nil {
		t.Fatalf("list on fallback failed: %v", err)
	}
	if len(pulls) != 1 || pulls[0].ID != "pull-a" {
		t.Errorf("fallback round trip mismatch: %+v", pulls)
	}
}

func TestOpenWith_AllTiersFail(t *testing.T) {
	failingPersistent := func(string) (*sql.DB, error) {
		return nil, fmt.Errorf("disk gone")
	}
	failingMemory := func() (*sql.DB, error) {
		return nil, fmt.Errorf("memory gone")
	}

	_, err := openWith(t.TempDir(), failingPersistent, failingMemory)
	if !errors.Is(err, errors.ErrStoreOpenFailed) {
		t.Errorf("expected STORE_OPEN_FAILED, got %v", err)
	}
}

func TestOpenWith_RetryCountsAsRecovery(t *testing.T) {
	calls := 0
	flaky := func(baseDir string) (*sql.DB, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("transient corruption")
		}
		return Init(baseDir)
	}

	store, err := openWith(t.TempDir(), flaky, openInMemory)
	if err != nil {
		t.Fatalf("openWith failed: %v", err)
	}
	defer store.Close()

	if store.InMemory {
		t.Error("second-attempt success should stay persistent")
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 persistent attempts, got %d", calls)
	}
}

func TestRemovePath(t *testing.T) {
	tmpDir := t.TempDir()

	// Missing path is a no-op.
	RemovePath(filepath.Join(tmpDir, "missing"))

	// Plain file.
	filePath := filepath.Join(tmpDir, "store.db")
	if err := os.WriteFile(filePath, []byte("x"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	RemovePath(filePath)
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}

	// Directory with contents.
	dirPath := filepath.Join(tmpDir, "store.db.d")
	if err := os.MkdirAll(filepath.Join(dirPath, "inner"), 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	RemovePath(dirPath)
	if _, err := os.Stat(dirPath); !os.IsNotExist(err) {
		t.Error("directory should be removed with its subtree")
	}
}
