package board

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPiece is returned by [Board.Apply] when no piece of the move's
	// size sits at the move's origin.
	ErrNoPiece = errors.New("no piece at move origin")

	// ErrBadMove is returned by [Board.Apply] when the slide is blocked
	// by another piece or the grid edge, or has fewer than one step.
	ErrBadMove = errors.New("illegal move")
)

// Dir is a slide direction on the grid. Up increases Y.
type Dir int

const (
	Up Dir = iota
	Down
	Left
	Right
)

// dirs fixes the enumeration order used by Slides.
var dirs = [...]Dir{Up, Down, Left, Right}

// String returns the lowercase direction name.
func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// ParseDir decodes a direction from its lowercase name.
func ParseDir(s string) (Dir, error) {
	for _, d := range dirs {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// delta returns the cell offset of one step in the direction.
func (d Dir) delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// shifted returns the cell moved the given number of steps along d.
func (c Cell) shifted(d Dir, steps int) Cell {
	dx, dy := d.delta()
	return Cell{X: c.X + dx*steps, Y: c.Y + dy*steps}
}

// Move slides one piece a number of cells in a direction. The piece is
// identified by its size and pre-move origin, never by a stable handle:
// boards carry no piece identity across states.
type Move struct {
	Size  Size // Size of the sliding piece
	From  Cell // Bottom-left cell of the piece before the slide
	Dir   Dir  // Slide direction
	Steps int  // Number of cells moved, always >= 1
}

// Dest returns the piece origin after the slide.
func (m Move) Dest() Cell { return m.From.shifted(m.Dir, m.Steps) }

// Inverse returns the move that undoes m. Sliding is reversible, so
// applying a move and then its inverse restores the original board.
func (m Move) Inverse() Move {
	return Move{Size: m.Size, From: m.Dest(), Dir: m.Dir.Opposite(), Steps: m.Steps}
}

// String formats the move as "2x2 (1,3) down 1".
func (m Move) String() string {
	return fmt.Sprintf("%s %s %s %d", m.Size, m.From, m.Dir, m.Steps)
}

// Slide couples a legal move with the board it produces.
type Slide struct {
	Move  Move
	Board Board
}

// Slides enumerates every legal single-piece slide on the board. The
// order is deterministic: pieces in storage order, directions up, down,
// left, right, step counts ascending. A blocked direction contributes
// nothing; a fully blocked board yields an empty slice.
//
// The board must be valid. Slides does not re-validate.
func (b Board) Slides() []Slide {
	occ := b.occupancy()
	var out []Slide
	for i := range b.Pieces {
		for _, d := range dirs {
			out = b.appendSlides(out, i, d, occ)
		}
	}
	return out
}

// appendSlides emits one slide per step count the piece can travel in
// the direction before hitting the grid edge or another piece.
func (b Board) appendSlides(dst []Slide, idx int, d Dir, occ []bool) []Slide {
	p := b.Pieces[idx]
	for steps := 1; b.stepFree(p, d, steps, occ); steps++ {
		next := b.clone()
		next.Pieces[idx].At = p.At.shifted(d, steps)
		dst = append(dst, Slide{
			Move:  Move{Size: p.Size, From: p.At, Dir: d, Steps: steps},
			Board: next,
		})
	}
	return dst
}

// stepFree reports whether the strip of cells the piece sweeps into on
// the given step lies inside the grid and is unoccupied. The strip is
// the full leading edge of the piece, one cell deep: a piece wider than
// one cell across the direction of travel must clear every lane.
func (b Board) stepFree(p Piece, d Dir, step int, occ []bool) bool {
	var x0, x1, y0, y1 int
	switch d {
	case Up:
		y := p.At.Y + p.Size.H + step - 1
		if y >= b.Height {
			return false
		}
		x0, x1, y0, y1 = p.At.X, p.At.X+p.Size.W-1, y, y
	case Down:
		y := p.At.Y - step
		if y < 0 {
			return false
		}
		x0, x1, y0, y1 = p.At.X, p.At.X+p.Size.W-1, y, y
	case Left:
		x := p.At.X - step
		if x < 0 {
			return false
		}
		x0, x1, y0, y1 = x, x, p.At.Y, p.At.Y+p.Size.H-1
	default: // Right
		x := p.At.X + p.Size.W + step - 1
		if x >= b.Width {
			return false
		}
		x0, x1, y0, y1 = x, x, p.At.Y, p.At.Y+p.Size.H-1
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if occ[y*b.Width+x] {
				return false
			}
		}
	}
	return true
}

// Apply plays a move on the board and returns the resulting board. It
// fails with ErrNoPiece if no piece of the move's size sits at the
// move's origin, and with ErrBadMove if the slide is blocked.
func (b Board) Apply(m Move) (Board, error) {
	if m.Steps < 1 {
		return Board{}, fmt.Errorf("%w: %d steps", ErrBadMove, m.Steps)
	}
	idx := -1
	for i, p := range b.Pieces {
		if p.Size == m.Size && p.At == m.From {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Board{}, fmt.Errorf("%w: %s at %s", ErrNoPiece, m.Size, m.From)
	}
	occ := b.occupancy()
	for s := 1; s <= m.Steps; s++ {
		if !b.stepFree(b.Pieces[idx], m.Dir, s, occ) {
			return Board{}, fmt.Errorf("%w: %s blocked at step %d", ErrBadMove, m, s)
		}
	}
	next := b.clone()
	next.Pieces[idx].At = m.From.shifted(m.Dir, m.Steps)
	return next, nil
}
