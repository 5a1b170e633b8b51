package ops

import (
	"strings"
	"testing"

	"github.com/seleny/arcana/internal/db"
	"github.com/seleny/arcana/internal/errors"
	"github.com/seleny/arcana/internal/tarot"
)

func TestSetNote_StoresSanitizedText(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	output, err := SetNote(database, nil, SetNoteInput{ID: "pull-a", Text: "  drew this at dawn\x00  "})
	if err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if !output.HasNote {
		t.Error("note should be present")
	}
	if output.Note == nil || *output.Note != "drew this at dawn" {
		t.Errorf("note not sanitized, got %v", output.Note)
	}

	stored, err := db.GetPull(database, "pull-a")
	if err != nil {
		t.Fatalf("GetPull failed: %v", err)
	}
	if stored.Note == nil || *stored.Note != "drew this at dawn" {
		t.Errorf("stored note mismatch: %v", stored.Note)
	}
}

func TestSetNote_TruncatesLongText(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	output, err := SetNote(database, nil, SetNoteInput{ID: "pull-a", Text: strings.Repeat("m", 600)})
	if err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if n := len([]rune(*output.Note)); n != tarot.NoteMaxChars {
		t.Errorf("expected %d runes, got %d", tarot.NoteMaxChars, n)
	}
}

func TestSetNote_BlankTextClears(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	if _, err := SetNote(database, nil, SetNoteInput{ID: "pull-a", Text: "something"}); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}

	output, err := SetNote(database, nil, SetNoteInput{ID: "pull-a", Text: "   \n  "})
	if err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}
	if output.HasNote {
		t.Error("blank note should clear, not store")
	}

	stored, _ := db.GetPull(database, "pull-a")
	if stored.Note != nil {
		t.Errorf("expected cleared note, got %q", *stored.Note)
	}
}

func TestClearNote(t *testing.T) {
	database := setupTestDB(t)
	insertTestPull(t, database, "pull-a", 1_700_000_000_000)

	if _, err := SetNote(database, nil, SetNoteInput{ID: "pull-a", Text: "keep this?"}); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}

	output, err := ClearNote(database, nil, "pull-a")
	if err != nil {
		t.Fatalf("ClearNote failed: %v", err)
	}
	if output.HasNote {
		t.Error("cleared note should not be present")
	}

	stored, _ := db.GetPull(database, "pull-a")
	if stored.Note != nil {
		t.Error("note should be gone from the store")
	}
}

func TestSetNote_MissingPull(t *testing.T) {
	database := setupTestDB(t)

	_, err := SetNote(database, nil, SetNoteInput{ID: "missing", Text: "hello"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestSetNote_EmptyID(t *testing.T) {
	database := setupTestDB(t)

	_, err := SetNote(database, nil, SetNoteInput{Text: "hello"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}

	_, err = ClearNote(database, nil, "")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}
