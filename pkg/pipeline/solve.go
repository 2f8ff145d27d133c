package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/cache"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// Solve builds the complete state graph for the puzzle in opts.
func Solve(ctx context.Context, opts Options) (*solver.Graph, error) {
	return solver.Build(ctx, opts.Puzzle, solver.Options{
		MaxStates: opts.MaxStates,
		Logger:    opts.Logger,
	})
}

// PuzzleHash returns the content hash identifying a puzzle: its name,
// the canonical board key and the goal. Boards that differ only in
// piece ordering hash identically, so equivalent positions share one
// cached graph.
func PuzzleHash(p board.Puzzle) string {
	payload := fmt.Sprintf("%s|%x|%s@%d,%d", p.Name, string(p.Board.Key()), p.Goal.Size, p.Goal.At.X, p.Goal.At.Y)
	return cache.Hash([]byte(payload))
}
