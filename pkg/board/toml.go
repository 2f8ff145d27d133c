package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrPuzzleSchema is returned by [ParsePuzzle] when the TOML document is
// missing required fields or mixes the two layout styles.
var ErrPuzzleSchema = errors.New("invalid puzzle definition")

// LoadPuzzle reads and decodes a puzzle TOML file. The puzzle name
// defaults to the file's base name when the document does not set one.
func LoadPuzzle(path string) (Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Puzzle{}, err
	}
	p, err := ParsePuzzle(data)
	if err != nil {
		return Puzzle{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// ParsePuzzle decodes a puzzle from TOML source. Two layout styles are
// supported and exactly one must be present: ASCII art rows,
//
//	name = "classic"
//	rows = ["ABBC", "ABBC", "DEEF", "DGHF", "I..J"]
//
//	[goal]
//	size = "2x2"
//	cell = [1, 0]
//
// or an explicit grid with a piece list,
//
//	[grid]
//	width = 4
//	height = 5
//
//	[[pieces]]
//	size = "2x2"
//	cell = [1, 3]
//
// The goal section is always required. The decoded puzzle is validated
// before it is returned.
func ParsePuzzle(data []byte) (Puzzle, error) {
	var file puzzleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Puzzle{}, err
	}

	var b Board
	switch {
	case len(file.Rows) > 0 && (file.Grid != nil || len(file.Pieces) > 0):
		return Puzzle{}, fmt.Errorf("%w: rows and grid/pieces are mutually exclusive", ErrPuzzleSchema)
	case len(file.Rows) > 0:
		var err error
		if b, err = FromRows(file.Rows...); err != nil {
			return Puzzle{}, err
		}
	case file.Grid != nil:
		b = Board{Width: file.Grid.Width, Height: file.Grid.Height}
		for i, entry := range file.Pieces {
			p, err := entry.piece()
			if err != nil {
				return Puzzle{}, fmt.Errorf("piece %d: %w", i, err)
			}
			b.Pieces = append(b.Pieces, p)
		}
	default:
		return Puzzle{}, fmt.Errorf("%w: need rows or a grid section", ErrPuzzleSchema)
	}

	if file.Goal == nil {
		return Puzzle{}, fmt.Errorf("%w: missing goal section", ErrPuzzleSchema)
	}
	goalPiece, err := file.Goal.piece()
	if err != nil {
		return Puzzle{}, fmt.Errorf("goal: %w", err)
	}

	p := Puzzle{
		Name:  file.Name,
		Board: b,
		Goal:  Goal{Size: goalPiece.Size, At: goalPiece.At},
	}
	if err := p.Validate(); err != nil {
		return Puzzle{}, err
	}
	return p, nil
}

type puzzleFile struct {
	Name   string       `toml:"name"`
	Rows   []string     `toml:"rows"`
	Grid   *gridSection `toml:"grid"`
	Pieces []placement  `toml:"pieces"`
	Goal   *placement   `toml:"goal"`
}

type gridSection struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// placement is a sized rectangle at a cell, shared by piece entries and
// the goal section.
type placement struct {
	Size string `toml:"size"`
	Cell []int  `toml:"cell"`
}

func (pl placement) piece() (Piece, error) {
	size, err := ParseSize(pl.Size)
	if err != nil {
		return Piece{}, fmt.Errorf("%w: %v", ErrPuzzleSchema, err)
	}
	if len(pl.Cell) != 2 {
		return Piece{}, fmt.Errorf("%w: cell wants [x, y], got %v", ErrPuzzleSchema, pl.Cell)
	}
	return Piece{Size: size, At: Cell{X: pl.Cell[0], Y: pl.Cell[1]}}, nil
}
