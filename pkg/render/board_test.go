package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridlock/pkg/board"
)

func TestBoardSVG(t *testing.T) {
	p := board.Classic()
	svg := string(BoardSVG(p))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg opening tag")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing svg closing tag")
	}

	// Background + one square per grid cell + one block per piece + the
	// dashed goal outline.
	wantRects := 1 + p.Board.Width*p.Board.Height + len(p.Board.Pieces) + 1
	if got := strings.Count(svg, "<rect"); got != wantRects {
		t.Errorf("rect count = %d, want %d", got, wantRects)
	}

	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("goal outline missing")
	}
	if !strings.Contains(svg, pieceFill(board.Size{W: 2, H: 2})) {
		t.Error("hero piece fill missing")
	}
}

func TestPieceFill(t *testing.T) {
	tests := []struct {
		name string
		size board.Size
		want string
	}{
		{"hero", board.Size{W: 2, H: 2}, "#ff443a"},
		{"unit", board.Size{W: 1, H: 1}, "#4B7BFF"},
		{"tall bar", board.Size{W: 1, H: 2}, "#8a93a6"},
		{"wide bar", board.Size{W: 2, H: 1}, "#8a93a6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pieceFill(tt.size); got != tt.want {
				t.Errorf("pieceFill(%v) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}

func TestCellOrigin(t *testing.T) {
	b := board.Board{Width: 4, Height: 5}

	// Bottom-left cell draws at the bottom of the image.
	x, y := cellOrigin(b, board.Cell{X: 0, Y: 0}, board.Size{W: 1, H: 1})
	if x != boardMargin || y != boardMargin+4*cellSize {
		t.Errorf("bottom-left origin = (%d, %d), want (%d, %d)", x, y, boardMargin, boardMargin+4*cellSize)
	}

	// Top-left cell draws at the top.
	x, y = cellOrigin(b, board.Cell{X: 0, Y: 4}, board.Size{W: 1, H: 1})
	if x != boardMargin || y != boardMargin {
		t.Errorf("top-left origin = (%d, %d), want (%d, %d)", x, y, boardMargin, boardMargin)
	}

	// A 2x2 block anchored at (1,0) spans up to y=1, so its top edge
	// sits one row above the bottom row's top.
	x, y = cellOrigin(b, board.Cell{X: 1, Y: 0}, board.Size{W: 2, H: 2})
	if x != boardMargin+cellSize || y != boardMargin+3*cellSize {
		t.Errorf("hero origin = (%d, %d), want (%d, %d)", x, y, boardMargin+cellSize, boardMargin+3*cellSize)
	}
}
