package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridlock/pkg/board"
)

// Board drawing geometry, in SVG user units.
const (
	cellSize    = 48
	cellGap     = 3
	boardMargin = 12
	cornerR     = 6
)

// BoardSVG draws one position as a standalone SVG document: the grid as
// light squares, each piece as a rounded block colored by footprint,
// and the goal region as a dashed outline. The board's bottom row
// renders at the bottom of the image.
func BoardSVG(p board.Puzzle) []byte {
	b := p.Board
	width := b.Width*cellSize + 2*boardMargin
	height := b.Height*cellSize + 2*boardMargin

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&sb, `  <rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)

	for y := range b.Height {
		for x := range b.Width {
			fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="#f2f3f5"/>`+"\n",
				boardMargin+x*cellSize+cellGap, boardMargin+y*cellSize+cellGap,
				cellSize-2*cellGap, cellSize-2*cellGap, cornerR)
		}
	}

	for _, piece := range b.Pieces {
		x, y := cellOrigin(b, piece.At, piece.Size)
		fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>`+"\n",
			x+cellGap, y+cellGap,
			piece.Size.W*cellSize-2*cellGap, piece.Size.H*cellSize-2*cellGap,
			cornerR, pieceFill(piece.Size))
	}

	gx, gy := cellOrigin(b, p.Goal.At, p.Goal.Size)
	fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="none" stroke="#009d77" stroke-width="2.5" stroke-dasharray="6 4"/>`+"\n",
		gx+1, gy+1, p.Goal.Size.W*cellSize-2, p.Goal.Size.H*cellSize-2, cornerR)

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// pieceFill picks the block color for a footprint: the 2x2 hero piece
// red, unit pieces blue, everything else slate.
func pieceFill(s board.Size) string {
	switch {
	case s.W == 2 && s.H == 2:
		return "#ff443a"
	case s.W == 1 && s.H == 1:
		return "#4B7BFF"
	default:
		return "#8a93a6"
	}
}

// cellOrigin maps a board cell to the top-left SVG coordinate of the
// rectangle spanning size cells. SVG y grows downward while the board's
// y grows upward.
func cellOrigin(b board.Board, at board.Cell, size board.Size) (x, y int) {
	x = boardMargin + at.X*cellSize
	y = boardMargin + (b.Height-at.Y-size.H)*cellSize
	return x, y
}
