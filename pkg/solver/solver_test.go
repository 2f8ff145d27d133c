package solver

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/gridlock/pkg/board"
)

// corridor is a 3x1 strip with a single 1x1 piece on the left that has
// to reach the right end. Three states, solvable in one slide.
func corridor() board.Puzzle {
	return board.Puzzle{
		Name: "corridor",
		Board: board.Board{Width: 3, Height: 1, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 2, Y: 0}},
	}
}

// twoOnSix is the 2x3 grid with two 1x1 pieces: 15 distinct states, five
// of them solved. Small enough to verify exhaustively.
func twoOnSix() board.Puzzle {
	return board.Puzzle{
		Name: "two-on-six",
		Board: board.Board{Width: 2, Height: 3, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 2}},
	}
}

func mustBuild(t *testing.T, p board.Puzzle) *Graph {
	t.Helper()
	g, err := Build(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Build(%s): %v", p.Name, err)
	}
	return g
}

func TestBuildCorridor(t *testing.T) {
	g := mustBuild(t, corridor())

	if g.StartID() != StartStateID {
		t.Errorf("StartID = %d, want %d", g.StartID(), StartStateID)
	}
	if g.StateCount() != 3 {
		t.Errorf("states = %d, want 3", g.StateCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("edges = %d, want 6", g.EdgeCount())
	}

	// One slide covers the whole corridor, so the start is a single
	// move from the solution even though it is two cells away.
	start, err := g.State(g.StartID())
	if err != nil {
		t.Fatal(err)
	}
	if start.ToSolution != 1 {
		t.Errorf("start distance = %v, want 1", start.ToSolution)
	}
	if start.FromStart != 0 {
		t.Errorf("start FromStart = %v, want 0", start.FromStart)
	}

	best, err := g.BestNeighbor(g.StartID())
	if err != nil {
		t.Fatal(err)
	}
	if best.Move.Steps != 2 || best.Move.Dir != board.Right {
		t.Errorf("best move = %v, want the two-step slide right", best.Move)
	}
	target, err := g.State(best.To)
	if err != nil {
		t.Fatal(err)
	}
	if !target.Solved || target.ToSolution != 0 {
		t.Errorf("best neighbor not solved: %+v", target)
	}
}

func TestBuildSingleStateGraph(t *testing.T) {
	p := board.Puzzle{
		Name: "locked",
		Board: board.Board{Width: 1, Height: 1, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
	}
	g := mustBuild(t, p)

	if g.StateCount() != 1 || g.EdgeCount() != 0 {
		t.Fatalf("graph = %d states, %d edges, want 1 and 0", g.StateCount(), g.EdgeCount())
	}
	start, err := g.State(StartStateID)
	if err != nil {
		t.Fatal(err)
	}
	if !start.Solved || start.ToSolution != 0 {
		t.Errorf("start = %+v, want solved at distance 0", start)
	}

	if _, err := g.BestNeighbor(StartStateID); !errors.Is(err, ErrNoMoves) {
		t.Errorf("BestNeighbor = %v, want %v", err, ErrNoMoves)
	}
}

// One piece walking a 2x2 grid: four states in a cycle, with the goal
// diagonally opposite the start.
func TestBuildDiagonalWalk(t *testing.T) {
	p := board.Puzzle{
		Name: "diagonal",
		Board: board.Board{Width: 2, Height: 2, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 1}},
	}
	g := mustBuild(t, p)

	if g.StateCount() != 4 || g.EdgeCount() != 8 {
		t.Fatalf("graph = %d states, %d edges, want 4 and 8", g.StateCount(), g.EdgeCount())
	}

	wantDist := map[board.Cell]Distance{
		{X: 0, Y: 0}: 2,
		{X: 0, Y: 1}: 1,
		{X: 1, Y: 0}: 1,
		{X: 1, Y: 1}: 0,
	}
	for cell, want := range wantDist {
		b := board.Board{Width: 2, Height: 2, Pieces: []board.Piece{
			{Size: board.Size{W: 1, H: 1}, At: cell},
		}}
		id, ok := g.Find(b)
		if !ok {
			t.Fatalf("state with piece at %v not found", cell)
		}
		st, err := g.State(id)
		if err != nil {
			t.Fatal(err)
		}
		if st.ToSolution != want {
			t.Errorf("piece at %v: distance = %v, want %v", cell, st.ToSolution, want)
		}
	}

	stats := g.Stats()
	wantHist := []int{1, 2, 1}
	if len(stats.Histogram) != len(wantHist) {
		t.Fatalf("histogram = %v, want %v", stats.Histogram, wantHist)
	}
	for i, n := range wantHist {
		if stats.Histogram[i] != n {
			t.Errorf("histogram[%d] = %d, want %d", i, stats.Histogram[i], n)
		}
	}
	if stats.MaxToSolution != 2 || stats.MaxFromStart != 2 {
		t.Errorf("max distances = %v, %v, want 2, 2", stats.MaxToSolution, stats.MaxFromStart)
	}
}

func TestBuildCompleteness(t *testing.T) {
	g := mustBuild(t, twoOnSix())

	// Two interchangeable pieces on six cells: 6*5/2 distinct states.
	if g.StateCount() != 15 {
		t.Errorf("states = %d, want 15", g.StateCount())
	}

	// Re-canonicalizing every discovered board must map back onto the
	// same registry entry, and no two states may share a key.
	seen := make(map[board.Key]StateID)
	for id := range StateID(g.StateCount()) {
		st, err := g.State(id)
		if err != nil {
			t.Fatal(err)
		}
		key := st.Board.Key()
		if prev, dup := seen[key]; dup {
			t.Errorf("states %d and %d share a key", prev, id)
		}
		seen[key] = id
		if found, ok := g.Find(st.Board); !ok || found != id {
			t.Errorf("Find(state %d board) = %d, %v", id, found, ok)
		}
	}

	if got := len(g.Solutions()); got != 5 {
		t.Errorf("solutions = %d, want 5", got)
	}
}

func TestBuildEdgeReversibility(t *testing.T) {
	g := mustBuild(t, twoOnSix())

	for id := range StateID(g.StateCount()) {
		st, err := g.State(id)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range st.Edges {
			target, err := g.State(e.To)
			if err != nil {
				t.Fatal(err)
			}
			inv := e.Move.Inverse()
			found := false
			for _, back := range target.Edges {
				if back.Move == inv && back.To == id {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("edge %d -%v-> %d has no inverse", id, e.Move, e.To)
			}
		}
	}
}

// bruteForceDistance computes the distance of a single board by its own
// forward breadth-first search, independent of the graph's backward
// propagation.
func bruteForceDistance(from board.Board, goal board.Goal) Distance {
	type entry struct {
		b board.Board
		d int
	}
	seen := map[board.Key]bool{from.Key(): true}
	queue := []entry{{from, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.b.Solved(goal) {
			return Distance(cur.d)
		}
		for _, s := range cur.b.Slides() {
			k := s.Board.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			queue = append(queue, entry{s.Board, cur.d + 1})
		}
	}
	return DistanceUnreachable
}

func TestBuildDistancesMatchBruteForce(t *testing.T) {
	p := twoOnSix()
	g := mustBuild(t, p)

	for id := range StateID(g.StateCount()) {
		st, err := g.State(id)
		if err != nil {
			t.Fatal(err)
		}
		want := bruteForceDistance(st.Board, p.Goal)
		if st.ToSolution != want {
			t.Errorf("state %d distance = %v, brute force says %v\n%s", id, st.ToSolution, want, st.Board)
		}
	}
}

func TestBuildUnreachable(t *testing.T) {
	// No 2x1 piece exists, so no state can ever satisfy the goal.
	p := corridor()
	p.Goal = board.Goal{Size: board.Size{W: 2, H: 1}, At: board.Cell{X: 1, Y: 0}}
	g := mustBuild(t, p)

	if got := len(g.Solutions()); got != 0 {
		t.Fatalf("solutions = %d, want 0", got)
	}
	stats := g.Stats()
	if stats.Unreachable != g.StateCount() {
		t.Errorf("unreachable = %d, want %d", stats.Unreachable, g.StateCount())
	}
	if stats.MaxToSolution.Reachable() {
		t.Errorf("MaxToSolution = %v, want unreachable", stats.MaxToSolution)
	}
	if stats.Histogram != nil {
		t.Errorf("histogram = %v, want none", stats.Histogram)
	}

	for id := range StateID(g.StateCount()) {
		st, err := g.State(id)
		if err != nil {
			t.Fatal(err)
		}
		if st.ToSolution != DistanceUnreachable {
			t.Errorf("state %d = %v, want unreachable", id, st.ToSolution)
		}
		if st.ToSolution == DistanceUnknown {
			t.Errorf("state %d left unknown", id)
		}
	}

	// Ties between unreachable neighbors fall back to generation
	// order: the first edge wins.
	start, err := g.State(StartStateID)
	if err != nil {
		t.Fatal(err)
	}
	if len(start.Edges) == 0 {
		t.Fatal("start has no edges")
	}
	best, err := g.BestNeighbor(StartStateID)
	if err != nil {
		t.Fatal(err)
	}
	if best != start.Edges[0] {
		t.Errorf("best = %+v, want first edge %+v", best, start.Edges[0])
	}
}

// Random positions generated by walking legal moves backward from a
// solved board must always have a finite distance no larger than the
// number of moves walked.
func TestBuildRandomBackwardWalks(t *testing.T) {
	solved := board.Board{Width: 2, Height: 3, Pieces: []board.Piece{
		{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 2}},
		{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
	}}
	goal := board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 2}}

	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))
	for walk := range 25 {
		b := solved
		steps := 1 + rng.IntN(12)
		for range steps {
			slides := b.Slides()
			b = slides[rng.IntN(len(slides))].Board
		}

		g := mustBuild(t, board.Puzzle{Name: "walk", Board: b, Goal: goal})
		start, err := g.State(StartStateID)
		if err != nil {
			t.Fatal(err)
		}
		if !start.ToSolution.Reachable() {
			t.Fatalf("walk %d: start unreachable after %d backward moves\n%s", walk, steps, b)
		}
		if int(start.ToSolution) > steps {
			t.Errorf("walk %d: distance %v exceeds %d backward moves", walk, start.ToSolution, steps)
		}
	}
}

func TestBuildClassic(t *testing.T) {
	if testing.Short() {
		t.Skip("classic build explores the full state space")
	}
	g := mustBuild(t, board.Classic())

	start, err := g.State(g.StartID())
	if err != nil {
		t.Fatal(err)
	}
	if start.FromStart != 0 {
		t.Errorf("start FromStart = %v, want 0", start.FromStart)
	}
	if !start.ToSolution.Reachable() {
		t.Fatal("classic start must be solvable")
	}
	if start.ToSolution < 10 {
		t.Errorf("classic distance = %v, implausibly small", start.ToSolution)
	}

	stats := g.Stats()
	if stats.States != g.StateCount() || stats.States < 1000 {
		t.Errorf("states = %d, implausibly few", stats.States)
	}
	if stats.Unreachable != 0 {
		t.Errorf("unreachable = %d, want 0 on the classic board", stats.Unreachable)
	}
	if stats.Solutions == 0 {
		t.Error("no solved states found")
	}

	// Histogram buckets cover every reachable state.
	total := 0
	for _, n := range stats.Histogram {
		total += n
	}
	if total != stats.States-stats.Unreachable {
		t.Errorf("histogram total = %d, want %d", total, stats.States-stats.Unreachable)
	}
	if stats.Histogram[0] != stats.Solutions {
		t.Errorf("histogram[0] = %d, want %d solutions", stats.Histogram[0], stats.Solutions)
	}
	if int(stats.MaxToSolution) != len(stats.Histogram)-1 {
		t.Errorf("MaxToSolution = %v, histogram has %d buckets", stats.MaxToSolution, len(stats.Histogram))
	}

	// The start position allows exactly six slides.
	if len(start.Edges) != 6 {
		t.Errorf("start edges = %d, want 6", len(start.Edges))
	}
}

func TestBuildValidatesPuzzle(t *testing.T) {
	p := board.Puzzle{
		Board: board.Board{Width: 2, Height: 2, Pieces: []board.Piece{
			{Size: board.Size{W: 2, H: 2}, At: board.Cell{X: 0, Y: 0}},
			{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 1, Y: 1}},
		}},
		Goal: board.Goal{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}},
	}

	g, err := Build(context.Background(), p, Options{})
	if !errors.Is(err, board.ErrOverlap) {
		t.Errorf("Build = %v, want %v", err, board.ErrOverlap)
	}
	if g != nil {
		t.Error("Build returned a partial graph alongside an error")
	}
}

func TestBuildMaxStates(t *testing.T) {
	g, err := Build(context.Background(), board.Classic(), Options{MaxStates: 10})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Build = %v, want %v", err, ErrTooLarge)
	}
	if g != nil {
		t.Error("Build returned a partial graph alongside an error")
	}
}

func TestBuildHonorsContextBetweenPhases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, corridor(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build = %v, want %v", err, context.Canceled)
	}
}

func TestStateNotFound(t *testing.T) {
	g := mustBuild(t, corridor())

	for _, id := range []StateID{-1, StateID(g.StateCount()), 9999} {
		if _, err := g.State(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("State(%d) = %v, want %v", id, err, ErrNotFound)
		}
		if _, err := g.BestNeighbor(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("BestNeighbor(%d) = %v, want %v", id, err, ErrNotFound)
		}
	}
}

func TestNewGraphRebuild(t *testing.T) {
	g := mustBuild(t, corridor())

	// Lift the states out and reassemble them into a fresh graph.
	states := make([]*State, g.StateCount())
	for i := range states {
		st, err := g.State(StateID(i))
		if err != nil {
			t.Fatal(err)
		}
		copied := *st
		states[i] = &copied
	}

	rebuilt, err := NewGraph(g.Puzzle(), states, g.Stats())
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if rebuilt.StateCount() != g.StateCount() {
		t.Errorf("states = %d, want %d", rebuilt.StateCount(), g.StateCount())
	}
	if rebuilt.Stats().Solutions != g.Stats().Solutions {
		t.Errorf("solutions = %d, want %d", rebuilt.Stats().Solutions, g.Stats().Solutions)
	}
	if id, ok := rebuilt.Find(g.Puzzle().Board); !ok || id != StartStateID {
		t.Errorf("Find(start) = %v, %v; want 0, true", id, ok)
	}
}

func TestNewGraphMalformed(t *testing.T) {
	piece := board.Piece{Size: board.Size{W: 1, H: 1}, At: board.Cell{X: 0, Y: 0}}
	strip := board.Board{Width: 3, Height: 1, Pieces: []board.Piece{piece}}
	p := board.Puzzle{Board: strip, Goal: board.Goal{Size: piece.Size, At: board.Cell{X: 2, Y: 0}}}

	tests := []struct {
		name   string
		states []*State
	}{
		{
			name:   "NilState",
			states: []*State{nil},
		},
		{
			name:   "IDMismatch",
			states: []*State{{ID: 3, Board: strip}},
		},
		{
			name: "EdgeOutOfRange",
			states: []*State{{ID: 0, Board: strip, Edges: []Edge{
				{Move: board.Move{Size: piece.Size, From: piece.At, Dir: board.Right, Steps: 1}, To: 7},
			}}},
		},
		{
			name: "DuplicateBoard",
			states: []*State{
				{ID: 0, Board: strip},
				{ID: 1, Board: strip},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGraph(p, tt.states, Stats{}); !errors.Is(err, ErrMalformed) {
				t.Errorf("NewGraph = %v, want %v", err, ErrMalformed)
			}
		})
	}
}

func TestFindIgnoresPieceOrder(t *testing.T) {
	g := mustBuild(t, twoOnSix())

	st, err := g.State(StartStateID)
	if err != nil {
		t.Fatal(err)
	}
	shuffled := board.Board{
		Width:  st.Board.Width,
		Height: st.Board.Height,
		Pieces: []board.Piece{st.Board.Pieces[1], st.Board.Pieces[0]},
	}

	id, ok := g.Find(shuffled)
	if !ok || id != StartStateID {
		t.Errorf("Find = %d, %v, want %d, true", id, ok, StartStateID)
	}

	if _, ok := g.Find(board.Board{Width: 9, Height: 9}); ok {
		t.Error("Find matched a board from a different puzzle")
	}
}
