package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/solver"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close()

	if got, err := store.Get(ctx, "missing"); err != nil || got != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", got, err)
	}

	sess := New("classic", solver.StartStateID, time.Hour)
	sess.Advance(mustMove(t, Move{Size: "1x1", Cell: [2]int{0, 4}, Dir: "up", Steps: 1}), 3)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored session")
	}
	if got.Puzzle != "classic" || got.Current != 3 || got.MoveCount() != 1 {
		t.Errorf("Get = %+v, want stored session", got)
	}
	if got.Moves[0] != sess.Moves[0] {
		t.Errorf("stored move = %+v, want %+v", got.Moves[0], sess.Moves[0])
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("session should be gone after Delete")
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete(deleted) = %v, want nil", err)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	expired := New("classic", solver.StartStateID, -time.Minute)
	live := New("classic", solver.StartStateID, time.Hour)
	if err := store.Set(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, live); err != nil {
		t.Fatal(err)
	}

	// Expired sessions read as missing and leave no file behind.
	if got, _ := store.Get(ctx, expired.ID); got != nil {
		t.Error("expired session should read as missing")
	}

	if err := store.Set(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	entries, err := os.ReadDir(store.Path())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 1 || names[0] != live.ID+".json" {
		t.Errorf("files after cleanup = %v, want only %s.json", names, live.ID)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	path := filepath.Join(store.Path(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "broken"); err == nil {
		t.Error("Get on a corrupt file should fail")
	}
}

func mustMove(t *testing.T, m Move) board.Move {
	t.Helper()
	out, err := m.BoardMove()
	if err != nil {
		t.Fatalf("BoardMove(%+v): %v", m, err)
	}
	return out
}
