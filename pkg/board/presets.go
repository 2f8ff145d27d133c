package board

import (
	"errors"
	"fmt"
)

// ErrBadLayout is returned by [FromRows] when the ASCII rows do not
// describe a rectangular, non-ragged arrangement of rectangular pieces.
var ErrBadLayout = errors.New("malformed board layout")

// FromRows builds a board from ASCII art, topmost row first. Every
// distinct letter marks the cells of one piece; '.' marks a free cell.
// Pieces are ordered by first appearance in reading order. The letter
// cells of each piece must form a full rectangle.
//
//	b, err := FromRows(
//		"ABBC",
//		"ABBC",
//		"DEEF",
//		"DGHF",
//		"I..J",
//	)
func FromRows(rows ...string) (Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Board{}, fmt.Errorf("%w: empty layout", ErrBadLayout)
	}
	b := Board{Width: len(rows[0]), Height: len(rows)}

	type extent struct {
		minX, maxX, minY, maxY int
		cells                  int
	}
	extents := map[byte]*extent{}
	var order []byte

	for r, row := range rows {
		if len(row) != b.Width {
			return Board{}, fmt.Errorf("%w: row %d is %d cells, want %d", ErrBadLayout, r, len(row), b.Width)
		}
		y := b.Height - 1 - r
		for x := 0; x < b.Width; x++ {
			ch := row[x]
			if ch == '.' {
				continue
			}
			e, ok := extents[ch]
			if !ok {
				e = &extent{minX: x, maxX: x, minY: y, maxY: y}
				extents[ch] = e
				order = append(order, ch)
			}
			e.minX = min(e.minX, x)
			e.maxX = max(e.maxX, x)
			e.minY = min(e.minY, y)
			e.maxY = max(e.maxY, y)
			e.cells++
		}
	}

	for _, ch := range order {
		e := extents[ch]
		w, h := e.maxX-e.minX+1, e.maxY-e.minY+1
		if e.cells != w*h {
			return Board{}, fmt.Errorf("%w: piece %q is not a rectangle", ErrBadLayout, ch)
		}
		b.Pieces = append(b.Pieces, Piece{
			Size: Size{W: w, H: h},
			At:   Cell{X: e.minX, Y: e.minY},
		})
	}

	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Classic returns the classic 4x5 ten-piece puzzle: a 2x2 piece blocked
// in by four 1x2 pieces, a 2x1 bar and four 1x1 pieces, with the big
// piece needing to reach the bottom exit at (1,0).
func Classic() Puzzle {
	b, err := FromRows(
		"ABBC",
		"ABBC",
		"DEEF",
		"DGHF",
		"I..J",
	)
	if err != nil {
		panic("board: classic layout invalid: " + err.Error())
	}
	return Puzzle{
		Name:  "classic",
		Board: b,
		Goal:  Goal{Size: Size{W: 2, H: 2}, At: Cell{X: 1, Y: 0}},
	}
}
