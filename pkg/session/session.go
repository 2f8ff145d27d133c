// Package session tracks interactive play sessions against a solved
// puzzle graph.
//
// A session records which puzzle is being played, the state the player
// currently sits in, and the moves taken so far. Sessions expire after
// a TTL and are kept in one of three backends:
//   - memory: in-process storage for development and testing
//   - file: JSON files under the user config directory for CLI play
//   - redis: shared storage for multi-instance server deployments
//
// # Usage
//
// Create a store and start a session:
//
//	store := session.NewMemoryStore()
//	sess := session.New("classic", graph.StartID(), session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
// Look sessions up by ID; a missing session is nil, nil rather than an
// error, so callers can distinguish "not found" from backend failures:
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // expired or never existed
//	}
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// DefaultTTL is the default session lifetime. Play sessions are
// short-lived by nature; a day comfortably outlasts any game.
const DefaultTTL = 24 * time.Hour

// Move is one applied slide in a session's history, stored in the same
// wire shape the analysis export uses so histories read alike in JSON
// files and Redis values.
type Move struct {
	Size  string `json:"size"`
	Cell  [2]int `json:"cell"`
	Dir   string `json:"dir"`
	Steps int    `json:"steps"`
	To    int    `json:"to"`
}

// Record converts a board move and its resulting state into the stored
// wire shape.
func Record(m board.Move, to solver.StateID) Move {
	return Move{
		Size:  m.Size.String(),
		Cell:  [2]int{m.From.X, m.From.Y},
		Dir:   m.Dir.String(),
		Steps: m.Steps,
		To:    int(to),
	}
}

// BoardMove decodes the stored move back into a board move.
func (m Move) BoardMove() (board.Move, error) {
	size, err := board.ParseSize(m.Size)
	if err != nil {
		return board.Move{}, fmt.Errorf("move size: %w", err)
	}
	dir, err := board.ParseDir(m.Dir)
	if err != nil {
		return board.Move{}, fmt.Errorf("move dir: %w", err)
	}
	return board.Move{
		Size:  size,
		From:  board.Cell{X: m.Cell[0], Y: m.Cell[1]},
		Dir:   dir,
		Steps: m.Steps,
	}, nil
}

// Session is one play-through of a puzzle. The puzzle is referenced by
// name; the graph itself is derived state and never stored here.
type Session struct {
	ID        string    `json:"id"`
	Puzzle    string    `json:"puzzle"`
	Current   int       `json:"current"` // state ID the player sits in
	Moves     []Move    `json:"moves,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session for the named puzzle positioned at the given
// state, with a fresh unique ID.
func New(puzzle string, start solver.StateID, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        GenerateID(),
		Puzzle:    puzzle,
		Current:   int(start),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// GenerateID creates a new unique session ID.
func GenerateID() string {
	return uuid.NewString()
}

// IsExpired returns true if the session has passed its expiry time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Advance appends a move to the history and repositions the session on
// the move's target state.
func (s *Session) Advance(m board.Move, to solver.StateID) {
	s.Moves = append(s.Moves, Record(m, to))
	s.Current = int(to)
	s.UpdatedAt = time.Now()
}

// MoveCount returns the number of moves taken so far.
func (s *Session) MoveCount() int { return len(s.Moves) }

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session, replacing any previous version.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for backends
	// with native expiry, such as Redis).
	Cleanup(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
