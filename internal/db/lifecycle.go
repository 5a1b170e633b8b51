package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/seleny/arcana/internal/errors"
	_ "modernc.org/sqlite"
)

// Store is the single live handle to the history database. Exactly one is
// constructed per process, at the composition root, and injected everywhere
// a handle is needed; independently-opened handles to the same file risk
// lock contention and inconsistent reads.
type Store struct {
	DB       *sql.DB
	InMemory bool
	Path     string // empty when in-memory
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Open opens the history store with a three-tier recovery ladder:
//
//  1. Normal open at baseDir/arcana.db with the current schema.
//  2. On failure (corruption, incompatible schema), delete the store files
//     and retry the normal open once.
//  3. On repeated failure, fall back to a non-persistent in-memory store
//     with the same schema. History is lost at process exit, but the app
//     keeps working.
//
// An error is returned only if the in-memory tier itself fails, which is a
// fatal environment problem.
func Open(baseDir string) (*Store, error) {
	return openWith(baseDir, Init, openInMemory)
}

// openWith is Open with injectable tiers, for tests.
func openWith(baseDir string, persistent func(string) (*sql.DB, error), memory func() (*sql.DB, error)) (*Store, error) {
	database, err := persistent(baseDir)
	if err == nil {
		return &Store{DB: database, Path: filepath.Join(baseDir, StoreFileName)}, nil
	}

	log.Printf("history store open failed: %v", err)
	log.Printf("resetting history store at %s and retrying", baseDir)
	removeStoreFiles(baseDir)

	database, err = persistent(baseDir)
	if err == nil {
		log.Printf("history store recovered with a fresh database")
		return &Store{DB: database, Path: filepath.Join(baseDir, StoreFileName)}, nil
	}

	log.Printf("history store reopen failed after reset: %v", err)
	log.Printf("falling back to in-memory store; history will not persist this session")

	database, err = memory()
	if err != nil {
		return nil, errors.NewStoreOpenFailed(err)
	}
	return &Store{DB: database, InMemory: true}, nil
}

// openInMemory constructs the tier-3 non-persistent store.
func openInMemory() (*sql.DB, error) {
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Each pool connection would otherwise see its own empty memory database.
	database.SetMaxOpenConns(1)

	if err := migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// removeStoreFiles deletes the database file and its WAL/SHM sidecars.
func removeStoreFiles(baseDir string) {
	dbPath := filepath.Join(baseDir, StoreFileName)
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		RemovePath(path)
	}
}

// RemovePath deletes a store location, tolerating either a file or a
// directory. A missing path is a no-op. Directories are removed with their
// entire subtree.
func RemovePath(path string) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		log.Printf("stat %s failed, skipping delete: %v", path, err)
		return
	}

	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			log.Printf("failed to remove directory %s: %v", path, err)
			return
		}
		log.Printf("removed directory %s", path)
		return
	}

	if err := os.Remove(path); err != nil {
		log.Printf("failed to remove file %s: %v", path, err)
		return
	}
	log.Printf("removed file %s", path)
}
