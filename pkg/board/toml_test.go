package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePuzzle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, p Puzzle)
	}{
		{
			name: "Rows",
			input: `
name = "classic"
rows = ["ABBC", "ABBC", "DEEF", "DGHF", "I..J"]

[goal]
size = "2x2"
cell = [1, 0]
`,
			check: func(t *testing.T, p Puzzle) {
				if p.Name != "classic" {
					t.Errorf("name = %q, want classic", p.Name)
				}
				if len(p.Board.Pieces) != 10 {
					t.Errorf("pieces = %d, want 10", len(p.Board.Pieces))
				}
				if p.Board.Key() != Classic().Board.Key() {
					t.Error("board differs from the classic preset")
				}
				if p.Goal != (Goal{Size: Size{W: 2, H: 2}, At: Cell{X: 1, Y: 0}}) {
					t.Errorf("goal = %+v", p.Goal)
				}
			},
		},
		{
			name: "GridAndPieces",
			input: `
[grid]
width = 3
height = 2

[[pieces]]
size = "2x1"
cell = [0, 0]

[[pieces]]
size = "1x1"
cell = [2, 1]

[goal]
size = "2x1"
cell = [1, 1]
`,
			check: func(t *testing.T, p Puzzle) {
				if p.Board.Width != 3 || p.Board.Height != 2 {
					t.Errorf("grid = %dx%d, want 3x2", p.Board.Width, p.Board.Height)
				}
				if len(p.Board.Pieces) != 2 {
					t.Fatalf("pieces = %d, want 2", len(p.Board.Pieces))
				}
				if p.Board.Pieces[0] != (Piece{Size: Size{W: 2, H: 1}, At: Cell{X: 0, Y: 0}}) {
					t.Errorf("piece 0 = %+v", p.Board.Pieces[0])
				}
			},
		},
		{
			name: "RowsAndGridConflict",
			input: `
rows = ["A."]

[grid]
width = 2
height = 1

[goal]
size = "1x1"
cell = [0, 0]
`,
			wantErr: ErrPuzzleSchema,
		},
		{
			name: "NoLayout",
			input: `
name = "empty"

[goal]
size = "1x1"
cell = [0, 0]
`,
			wantErr: ErrPuzzleSchema,
		},
		{
			name:    "MissingGoal",
			input:   `rows = ["A."]`,
			wantErr: ErrPuzzleSchema,
		},
		{
			name: "BadSizeString",
			input: `
rows = ["A."]

[goal]
size = "two-by-two"
cell = [0, 0]
`,
			wantErr: ErrPuzzleSchema,
		},
		{
			name: "BadCell",
			input: `
rows = ["A."]

[goal]
size = "1x1"
cell = [0]
`,
			wantErr: ErrPuzzleSchema,
		},
		{
			name: "GoalOffGrid",
			input: `
rows = ["A."]

[goal]
size = "1x1"
cell = [5, 5]
`,
			wantErr: ErrGoal,
		},
		{
			name: "OverlappingPieces",
			input: `
[grid]
width = 2
height = 2

[[pieces]]
size = "2x2"
cell = [0, 0]

[[pieces]]
size = "1x1"
cell = [1, 1]

[goal]
size = "1x1"
cell = [0, 0]
`,
			wantErr: ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePuzzle([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParsePuzzle = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePuzzle: %v", err)
			}
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}

func TestLoadPuzzle(t *testing.T) {
	content := `
rows = ["A.", ".."]

[goal]
size = "1x1"
cell = [1, 0]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "trainer.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPuzzle(path)
	if err != nil {
		t.Fatalf("LoadPuzzle: %v", err)
	}
	if p.Name != "trainer" {
		t.Errorf("name = %q, want trainer (from file name)", p.Name)
	}
}

func TestLoadPuzzleNotFound(t *testing.T) {
	if _, err := LoadPuzzle("nonexistent.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}
