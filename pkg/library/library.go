// Package library is the named-puzzle catalog: a small set of built-in
// boards plus whatever the user saves, behind a Store interface with
// in-memory and MongoDB backends.
//
// Puzzles are stored as documents in the same ASCII-art rows form the
// TOML files use, so a document survives a round trip through either
// representation unchanged.
package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridlock/pkg/board"
)

// idNamespace scopes the deterministic IDs of built-in documents.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/gridlock"))

// Document is the stored form of a puzzle. Name is the primary key; ID
// is a UUID assigned when the document enters the library and kept
// stable across edits.
type Document struct {
	Name        string    `json:"name" bson:"_id"`
	ID          string    `json:"id" bson:"id"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Rows        []string  `json:"rows" bson:"rows"`
	GoalSize    string    `json:"goal_size" bson:"goal_size"`
	GoalCell    [2]int    `json:"goal_cell" bson:"goal_cell"`
	Builtin     bool      `json:"builtin,omitempty" bson:"builtin,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// FromPuzzle converts a puzzle into its stored document form. The board
// is rendered to rows art, so boards with more pieces than the art can
// label are rejected.
func FromPuzzle(p board.Puzzle) (Document, error) {
	if err := p.Validate(); err != nil {
		return Document{}, err
	}
	if len(p.Board.Pieces) > 52 {
		return Document{}, fmt.Errorf("puzzle %q: %d pieces exceed rows-art labels", p.Name, len(p.Board.Pieces))
	}
	now := time.Now()
	return Document{
		Name:      p.Name,
		ID:        GenerateID(),
		Rows:      boardRows(p.Board),
		GoalSize:  p.Goal.Size.String(),
		GoalCell:  [2]int{p.Goal.At.X, p.Goal.At.Y},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GenerateID creates a new unique document ID.
func GenerateID() string {
	return uuid.NewString()
}

// Puzzle decodes the document back into a validated puzzle.
func (d Document) Puzzle() (board.Puzzle, error) {
	b, err := board.FromRows(d.Rows...)
	if err != nil {
		return board.Puzzle{}, fmt.Errorf("document %q: %w", d.Name, err)
	}
	size, err := board.ParseSize(d.GoalSize)
	if err != nil {
		return board.Puzzle{}, fmt.Errorf("document %q goal: %w", d.Name, err)
	}
	p := board.Puzzle{
		Name:  d.Name,
		Board: b,
		Goal:  board.Goal{Size: size, At: board.Cell{X: d.GoalCell[0], Y: d.GoalCell[1]}},
	}
	if err := p.Validate(); err != nil {
		return board.Puzzle{}, fmt.Errorf("document %q: %w", d.Name, err)
	}
	return p, nil
}

// Validate checks that the document decodes into a legal puzzle.
func (d Document) Validate() error {
	_, err := d.Puzzle()
	return err
}

// boardRows renders a board to its rows art, topmost row first.
func boardRows(b board.Board) []string {
	return strings.Split(b.String(), "\n")
}

// Builtins returns the documents shipped with the binary: the classic
// board plus small teaching boards. IDs are deterministic so the same
// builtin carries the same ID everywhere.
func Builtins() []Document {
	return []Document{
		{
			Name:        "classic",
			ID:          builtinID("classic"),
			Description: "The classic 4x5 ten-piece puzzle. Walk the big block to the bottom exit.",
			Rows:        []string{"ABBC", "ABBC", "DEEF", "DGHF", "I..J"},
			GoalSize:    "2x2",
			GoalCell:    [2]int{1, 0},
			Builtin:     true,
		},
		{
			Name:        "descent",
			ID:          builtinID("descent"),
			Description: "A gentle warm-up: clear the lane and bring the big block down.",
			Rows:        []string{"ABBC", "ABBC", "....", "DEFG", "...."},
			GoalSize:    "2x2",
			GoalCell:    [2]int{1, 0},
			Builtin:     true,
		},
		{
			Name:        "corner",
			ID:          builtinID("corner"),
			Description: "Three moves on a 3x3 grid. Get the block past the pebble.",
			Rows:        []string{".AA", ".AA", "B.."},
			GoalSize:    "2x2",
			GoalCell:    [2]int{0, 0},
			Builtin:     true,
		},
	}
}

func builtinID(name string) string {
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
