package session

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/solver"
)

func TestNew(t *testing.T) {
	sess := New("classic", solver.StartStateID, time.Hour)

	if sess.ID == "" {
		t.Error("New() should assign an ID")
	}
	if sess.Puzzle != "classic" {
		t.Errorf("Puzzle = %q, want %q", sess.Puzzle, "classic")
	}
	if sess.Current != 0 {
		t.Errorf("Current = %d, want 0", sess.Current)
	}
	if sess.MoveCount() != 0 {
		t.Errorf("MoveCount = %d, want 0", sess.MoveCount())
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Error("ExpiresAt should be after CreatedAt")
	}

	other := New("classic", solver.StartStateID, time.Hour)
	if other.ID == sess.ID {
		t.Error("two sessions should never share an ID")
	}
}

func TestIsExpired(t *testing.T) {
	sess := New("classic", solver.StartStateID, -time.Minute)
	if !sess.IsExpired() {
		t.Error("session with negative TTL should be expired")
	}
}

func TestAdvance(t *testing.T) {
	sess := New("classic", solver.StartStateID, time.Hour)

	m := board.Move{
		Size:  board.Size{W: 1, H: 1},
		From:  board.Cell{X: 0, Y: 0},
		Dir:   board.Right,
		Steps: 2,
	}
	sess.Advance(m, 5)

	if sess.Current != 5 {
		t.Errorf("Current = %d, want 5", sess.Current)
	}
	if sess.MoveCount() != 1 {
		t.Fatalf("MoveCount = %d, want 1", sess.MoveCount())
	}

	got := sess.Moves[0]
	want := Move{Size: "1x1", Cell: [2]int{0, 0}, Dir: "right", Steps: 2, To: 5}
	if got != want {
		t.Errorf("recorded move = %+v, want %+v", got, want)
	}
}

func TestMoveRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		move board.Move
	}{
		{
			name: "UnitRight",
			move: board.Move{Size: board.Size{W: 1, H: 1}, From: board.Cell{X: 0, Y: 0}, Dir: board.Right, Steps: 1},
		},
		{
			name: "BigDown",
			move: board.Move{Size: board.Size{W: 2, H: 2}, From: board.Cell{X: 1, Y: 3}, Dir: board.Down, Steps: 2},
		},
		{
			name: "BarUp",
			move: board.Move{Size: board.Size{W: 2, H: 1}, From: board.Cell{X: 1, Y: 2}, Dir: board.Up, Steps: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record(tt.move, 1)
			back, err := rec.BoardMove()
			if err != nil {
				t.Fatalf("BoardMove: %v", err)
			}
			if back != tt.move {
				t.Errorf("round trip = %+v, want %+v", back, tt.move)
			}
		})
	}
}

func TestBoardMoveInvalid(t *testing.T) {
	tests := []struct {
		name string
		move Move
	}{
		{"BadSize", Move{Size: "wide", Dir: "up", Steps: 1}},
		{"BadDir", Move{Size: "1x1", Dir: "sideways", Steps: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.move.BoardMove(); err == nil {
				t.Errorf("BoardMove(%+v) should fail", tt.move)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	// Missing session is nil, nil.
	got, err := store.Get(ctx, "missing")
	if err != nil || got != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", got, err)
	}

	sess := New("classic", solver.StartStateID, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != sess.ID || got.Puzzle != "classic" {
		t.Errorf("Get = %+v, want stored session", got)
	}

	// Mutating the returned copy must not touch the stored session.
	got.Current = 99
	again, _ := store.Get(ctx, sess.ID)
	if again.Current == 99 {
		t.Error("Get should return a copy, not the stored session")
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("session should be gone after Delete")
	}

	// Deleting again is fine.
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete(deleted) = %v, want nil", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	expired := New("classic", solver.StartStateID, -time.Minute)
	live := New("classic", solver.StartStateID, time.Hour)
	if err := store.Set(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, live); err != nil {
		t.Fatal(err)
	}

	// Expired sessions read as missing.
	if got, _ := store.Get(ctx, expired.ID); got != nil {
		t.Error("expired session should read as missing")
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len after cleanup = %d, want 1", store.Len())
	}
	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("live session should survive cleanup")
	}
}
