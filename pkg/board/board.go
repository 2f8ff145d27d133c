// Package board models sliding-block puzzle positions: a fixed rectangular
// grid holding axis-aligned rectangular pieces that slide along rows and
// columns without rotating, overlapping, or leaving the grid.
//
// Boards are plain values. Operations that change a position (Apply, the
// slides produced by Slides) return new boards and never mutate their
// receiver, so a board can be shared freely once built.
package board

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrGridSize is returned by [Board.Validate] when the grid has a
	// non-positive width or height.
	ErrGridSize = errors.New("grid dimensions must be positive")

	// ErrPieceSize is returned by [Board.Validate] when a piece dimension
	// is outside 1..MaxPieceDim.
	ErrPieceSize = errors.New("piece size out of range")

	// ErrBounds is returned by [Board.Validate] when a piece extends past
	// the grid edge.
	ErrBounds = errors.New("piece out of bounds")

	// ErrOverlap is returned by [Board.Validate] when two pieces occupy
	// the same cell.
	ErrOverlap = errors.New("pieces overlap")

	// ErrGoal is returned by [Puzzle.Validate] when the goal region does
	// not fit on the grid.
	ErrGoal = errors.New("goal does not fit the grid")
)

// MaxPieceDim is the largest piece extent along either axis. The puzzle
// family only uses 1x1, 1x2, 2x1 and 2x2 pieces.
const MaxPieceDim = 2

// Cell is a grid coordinate: column X, row Y, origin at the bottom-left
// corner of the board.
type Cell struct {
	X int
	Y int
}

// String returns the cell as "(x,y)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Size is a piece extent in grid units.
type Size struct {
	W int
	H int
}

// String returns the size as "WxH".
func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// ParseSize decodes a "WxH" size string such as "2x1".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q wants WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("size %q wants WxH", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("size %q wants WxH", s)
	}
	return Size{W: width, H: height}, nil
}

// Piece is an axis-aligned rectangle on the grid, anchored at its
// bottom-left cell. Pieces have no identity beyond size and position:
// two same-size pieces are interchangeable everywhere in this package.
type Piece struct {
	Size Size // Extent in grid units, each axis 1..MaxPieceDim
	At   Cell // Bottom-left cell of the piece
}

// Goal designates the solved condition: a piece of exactly Size with its
// bottom-left cell at At.
type Goal struct {
	Size Size
	At   Cell
}

// Board is a concrete arrangement of pieces on a fixed grid. The zero
// value is not usable; construct boards with explicit dimensions and
// pieces, or through FromRows, and check them with Validate.
type Board struct {
	Width  int
	Height int
	Pieces []Piece
}

// Validate checks grid dimensions, piece sizes, bounds and overlaps.
// It returns the first violation found, wrapped around one of the
// sentinel errors above.
func (b Board) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridSize, b.Width, b.Height)
	}
	occ := make([]bool, b.Width*b.Height)
	for i, p := range b.Pieces {
		if p.Size.W < 1 || p.Size.W > MaxPieceDim || p.Size.H < 1 || p.Size.H > MaxPieceDim {
			return fmt.Errorf("%w: piece %d is %s", ErrPieceSize, i, p.Size)
		}
		if p.At.X < 0 || p.At.Y < 0 || p.At.X+p.Size.W > b.Width || p.At.Y+p.Size.H > b.Height {
			return fmt.Errorf("%w: piece %d (%s at %s)", ErrBounds, i, p.Size, p.At)
		}
		for y := p.At.Y; y < p.At.Y+p.Size.H; y++ {
			for x := p.At.X; x < p.At.X+p.Size.W; x++ {
				if occ[y*b.Width+x] {
					return fmt.Errorf("%w: cell (%d,%d)", ErrOverlap, x, y)
				}
				occ[y*b.Width+x] = true
			}
		}
	}
	return nil
}

// Solved reports whether some piece of exactly the goal size has its
// bottom-left cell at the goal cell.
func (b Board) Solved(g Goal) bool {
	for _, p := range b.Pieces {
		if p.Size == g.Size && p.At == g.At {
			return true
		}
	}
	return false
}

// occupancy returns the occupied cells as a flat mask indexed y*Width+x.
// It is derived on demand for move generation and never stored.
func (b Board) occupancy() []bool {
	occ := make([]bool, b.Width*b.Height)
	for _, p := range b.Pieces {
		for y := p.At.Y; y < p.At.Y+p.Size.H; y++ {
			for x := p.At.X; x < p.At.X+p.Size.W; x++ {
				occ[y*b.Width+x] = true
			}
		}
	}
	return occ
}

// clone returns a board with its own piece slice.
func (b Board) clone() Board {
	out := b
	out.Pieces = slices.Clone(b.Pieces)
	return out
}

// String renders the board as ASCII art, topmost row first. Pieces are
// labeled A, B, C... in storage order; free cells are dots.
func (b Board) String() string {
	if b.Width <= 0 || b.Height <= 0 {
		return ""
	}
	rows := make([][]byte, b.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", b.Width))
	}
	for i, p := range b.Pieces {
		for y := p.At.Y; y < p.At.Y+p.Size.H; y++ {
			for x := p.At.X; x < p.At.X+p.Size.W; x++ {
				if x >= 0 && x < b.Width && y >= 0 && y < b.Height {
					rows[y][x] = pieceLabel(i)
				}
			}
		}
	}
	var sb strings.Builder
	for y := b.Height - 1; y >= 0; y-- {
		sb.Write(rows[y])
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// pieceLabel maps a piece index to a display letter.
func pieceLabel(i int) byte {
	switch {
	case i < 26:
		return byte('A' + i)
	case i < 52:
		return byte('a' + i - 26)
	default:
		return '#'
	}
}

// Puzzle couples a start board with its goal. This is the value a host
// hands to the solver; everything else is derived from it.
type Puzzle struct {
	Name  string
	Board Board
	Goal  Goal
}

// Validate checks the start board and that the goal region lies on the
// grid. A puzzle whose board holds no goal-sized piece is still valid:
// solving it simply finds every state unreachable.
func (p Puzzle) Validate() error {
	if err := p.Board.Validate(); err != nil {
		return err
	}
	g := p.Goal
	if g.Size.W < 1 || g.Size.W > MaxPieceDim || g.Size.H < 1 || g.Size.H > MaxPieceDim {
		return fmt.Errorf("%w: size %s", ErrGoal, g.Size)
	}
	if g.At.X < 0 || g.At.Y < 0 || g.At.X+g.Size.W > p.Board.Width || g.At.Y+g.Size.H > p.Board.Height {
		return fmt.Errorf("%w: %s at %s on %dx%d", ErrGoal, g.Size, g.At, p.Board.Width, p.Board.Height)
	}
	return nil
}
