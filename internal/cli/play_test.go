package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// playGraph builds the three-state corridor used by the model tests: a
// single 1x1 piece on a 3x1 strip that must reach the right end.
func playGraph(t *testing.T) *solver.Graph {
	t.Helper()
	p := board.Puzzle{
		Name: "corridor",
		Board: board.Board{Width: 3, Height: 1, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 2, Y: 0}},
	}
	g, err := solver.Build(context.Background(), p, solver.Options{})
	if err != nil {
		t.Fatalf("Build(%s): %v", p.Name, err)
	}
	return g
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m playModel, keys ...string) playModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(playModel)
	}
	return m
}

func TestPlayModelStart(t *testing.T) {
	g := playGraph(t)
	m := newPlayModel(g)

	if m.current != g.StartID() {
		t.Errorf("current = %d, want start %d", m.current, g.StartID())
	}
	if len(m.history) != 0 {
		t.Errorf("history = %d entries, want none", len(m.history))
	}
	if m.Init() != nil {
		t.Error("Init should not schedule commands")
	}
}

func TestPlayModelHint(t *testing.T) {
	m := newPlayModel(playGraph(t))

	// The best slide from the corridor start lands on the solution.
	m = press(t, m, "h")
	if !m.state().Solved {
		t.Errorf("state after hint not solved:\n%s", m.state().Board)
	}
	if len(m.history) != 1 {
		t.Errorf("history = %d entries, want 1", len(m.history))
	}
}

func TestPlayModelUndo(t *testing.T) {
	g := playGraph(t)
	m := newPlayModel(g)
	start := m.current

	m = press(t, m, "h", "u")
	if m.current != start {
		t.Errorf("current after undo = %d, want start %d", m.current, start)
	}
	if len(m.history) != 0 {
		t.Errorf("history after undo = %d entries, want none", len(m.history))
	}

	// Undo with no history is a no-op.
	m = press(t, m, "u")
	if m.current != start || len(m.history) != 0 {
		t.Error("undo on empty history should change nothing")
	}
}

func TestPlayModelReset(t *testing.T) {
	g := playGraph(t)
	m := newPlayModel(g)
	start := m.current

	m = press(t, m, "enter", "enter", "r")
	if m.current != start {
		t.Errorf("current after reset = %d, want start %d", m.current, start)
	}
	if len(m.history) != 0 {
		t.Errorf("history after reset = %d entries, want none", len(m.history))
	}
	if m.auto {
		t.Error("reset should switch auto mode off")
	}
}

func TestPlayModelCursorBounds(t *testing.T) {
	m := newPlayModel(playGraph(t))
	edges := len(m.state().Edges)
	if edges < 2 {
		t.Fatalf("corridor start has %d edges, test wants at least 2", edges)
	}

	m = press(t, m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.cursor)
	}

	for range edges + 3 {
		m = press(t, m, "down")
	}
	if m.cursor != edges-1 {
		t.Errorf("cursor after overshoot = %d, want %d", m.cursor, edges-1)
	}

	m = press(t, m, "up")
	if m.cursor != edges-2 {
		t.Errorf("cursor after up = %d, want %d", m.cursor, edges-2)
	}
}

func TestPlayModelQuit(t *testing.T) {
	m := newPlayModel(playGraph(t))

	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%q should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q produced %T, want tea.QuitMsg", k, cmd())
		}
	}
}

func TestPlayModelAutoSolve(t *testing.T) {
	m := newPlayModel(playGraph(t))

	next, cmd := m.Update(keyMsg("a"))
	m = next.(playModel)
	if !m.auto {
		t.Fatal("a should switch auto mode on")
	}
	if cmd == nil {
		t.Fatal("auto mode should schedule a tick")
	}

	for range 5 {
		if m.state().Solved {
			break
		}
		next, _ = m.Update(autoTickMsg{})
		m = next.(playModel)
	}

	if !m.state().Solved {
		t.Fatalf("auto mode did not solve the corridor:\n%s", m.state().Board)
	}
	if m.auto {
		t.Error("auto mode should switch off at the solution")
	}
}

func TestPlayModelView(t *testing.T) {
	m := newPlayModel(playGraph(t))

	view := m.View()
	if !strings.Contains(view, "corridor") {
		t.Error("view should carry the board name")
	}
	if !strings.Contains(view, "right") {
		t.Error("view should list the available slides")
	}
	if !strings.Contains(view, "start") {
		t.Error("view should mark the start position")
	}

	m = press(t, m, "h")
	view = m.View()
	if !strings.Contains(view, "Solved in 1 moves!") {
		t.Errorf("solved view missing banner:\n%s", view)
	}
}

func TestPlayModelDeadEndStatus(t *testing.T) {
	// No 2x1 piece exists, so every state is a dead end.
	p := board.Puzzle{
		Name: "hopeless",
		Board: board.Board{Width: 3, Height: 1, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 2, H: 1}, At: board.Cell{X: 1, Y: 0}},
	}
	g, err := solver.Build(context.Background(), p, solver.Options{})
	if err != nil {
		t.Fatalf("Build(%s): %v", p.Name, err)
	}

	m := newPlayModel(g)
	if !strings.Contains(m.View(), "dead end") {
		t.Error("view should flag an unsolvable position")
	}
}

func TestPlayModelLabels(t *testing.T) {
	m := newPlayModel(playGraph(t))
	small := board.Size{W: 1, H: 1}
	at := func(x int) board.Piece {
		return board.Piece{Size: small, At: board.Cell{X: x, Y: 0}}
	}

	if m.labels[at(0)] != 'A' {
		t.Fatalf("start labeling = %v, want A at (0,0)", m.labels)
	}

	// The hint slides the piece to the right end; its letter follows.
	m = press(t, m, "h")
	if m.labels[at(2)] != 'A' {
		t.Errorf("labeling after hint = %v, want A at (2,0)", m.labels)
	}

	m = press(t, m, "u")
	if m.labels[at(0)] != 'A' {
		t.Errorf("labeling after undo = %v, want A at (0,0)", m.labels)
	}
}

func TestRelabel(t *testing.T) {
	small := board.Size{W: 1, H: 1}
	a := board.Piece{Size: small, At: board.Cell{X: 0, Y: 0}}
	b := board.Piece{Size: small, At: board.Cell{X: 2, Y: 0}}
	labels := map[board.Piece]byte{a: 'A', b: 'B'}

	got := relabel(labels, board.Move{Size: small, From: a.At, Dir: board.Right, Steps: 1})

	moved := board.Piece{Size: small, At: board.Cell{X: 1, Y: 0}}
	if got[moved] != 'A' {
		t.Errorf("moved piece label = %q, want A", got[moved])
	}
	if got[b] != 'B' {
		t.Errorf("stationary piece label = %q, want B", got[b])
	}
	if _, ok := got[a]; ok {
		t.Error("old placement still labeled after the slide")
	}
	if len(labels) != 2 || labels[a] != 'A' {
		t.Error("relabel mutated its input")
	}
}

func TestRenderBoardLayout(t *testing.T) {
	// Piece at the top-left of a 2x2 grid: its label must land on the
	// first output line, the bottom row stays free.
	b := board.Board{Width: 2, Height: 2, Pieces: []board.Piece{
		{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 1}},
	}}
	goal := board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 0}}

	out := renderBoard(b, goal, labelPieces(b))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "A") {
		t.Errorf("top line = %q, should carry the piece label", lines[0])
	}
	if strings.Contains(lines[1], "A") {
		t.Errorf("bottom line = %q, should be free", lines[1])
	}
	if !strings.Contains(lines[1], "·") {
		t.Errorf("bottom line = %q, free cells should show as dots", lines[1])
	}
}

func TestPieceStyle(t *testing.T) {
	goal := board.Size{W: 2, H: 2}
	tests := []struct {
		name string
		size board.Size
		want lipgloss.Color
	}{
		{"goal piece", board.Size{W: 2, H: 2}, lipgloss.Color("203")},
		{"wide piece", board.Size{W: 2, H: 1}, lipgloss.Color("36")},
		{"tall piece", board.Size{W: 1, H: 2}, lipgloss.Color("75")},
		{"small piece", board.Size{W: 1, H: 1}, lipgloss.Color("220")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pieceStyle(tt.size, goal)
			if got.GetBackground() != tt.want {
				t.Errorf("pieceStyle(%v) background = %v, want %v", tt.size, got.GetBackground(), tt.want)
			}
		})
	}
}

func TestBoardLabel(t *testing.T) {
	tests := []struct {
		i    int
		want byte
	}{
		{0, 'A'},
		{25, 'Z'},
		{26, 'a'},
		{51, 'z'},
		{52, '#'},
		{100, '#'},
	}

	for _, tt := range tests {
		if got := boardLabel(tt.i); got != tt.want {
			t.Errorf("boardLabel(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
