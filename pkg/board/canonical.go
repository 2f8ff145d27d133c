package board

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrBadKey is returned by [FromKey] when the bytes do not encode a board.
var ErrBadKey = errors.New("malformed board key")

// Key identifies a board up to interchange of same-size pieces. It is a
// compact byte packing of the grid dimensions and the canonically sorted
// piece list, cheap to compute and usable directly as a map key.
type Key string

// pieceCompare orders pieces by size (width, then height), then position
// (column, then row). Sorting by this key erases which piece slot holds
// which cells, so two physically identical boards sort identically.
func pieceCompare(a, b Piece) int {
	if c := cmp.Compare(a.Size.W, b.Size.W); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Size.H, b.Size.H); c != 0 {
		return c
	}
	if c := cmp.Compare(a.At.X, b.At.X); c != 0 {
		return c
	}
	return cmp.Compare(a.At.Y, b.At.Y)
}

// Canonical returns a copy of the board with pieces in canonical order.
// Two boards that differ only in piece ordering, or in which same-size
// piece sits where, canonicalize to equal boards.
func (b Board) Canonical() Board {
	out := b.clone()
	slices.SortFunc(out.Pieces, pieceCompare)
	return out
}

// Key returns the board's canonical key: two bytes of grid dimensions
// followed by four bytes (w, h, x, y) per piece in canonical order.
func (b Board) Key() Key {
	c := b.Canonical()
	buf := make([]byte, 0, 2+4*len(c.Pieces))
	buf = append(buf, byte(c.Width), byte(c.Height))
	for _, p := range c.Pieces {
		buf = append(buf, byte(p.Size.W), byte(p.Size.H), byte(p.At.X), byte(p.At.Y))
	}
	return Key(buf)
}

// FromKey reconstructs the canonical board a key encodes. The result
// round-trips: FromKey(b.Key()) yields a board whose Key equals b.Key().
// Returns ErrBadKey for byte strings that are not well-formed keys, and
// a validation error for keys that decode to an illegal board.
func FromKey(k Key) (Board, error) {
	if len(k) < 2 || (len(k)-2)%4 != 0 {
		return Board{}, fmt.Errorf("%w: %d bytes", ErrBadKey, len(k))
	}
	b := Board{
		Width:  int(k[0]),
		Height: int(k[1]),
		Pieces: make([]Piece, 0, (len(k)-2)/4),
	}
	for i := 2; i < len(k); i += 4 {
		b.Pieces = append(b.Pieces, Piece{
			Size: Size{W: int(k[i]), H: int(k[i+1])},
			At:   Cell{X: int(k[i+2]), Y: int(k[i+3])},
		})
	}
	if err := b.Validate(); err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	return b, nil
}
