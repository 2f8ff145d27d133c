package solver

import (
	"errors"
	"fmt"

	"github.com/matzehuels/gridlock/pkg/board"
)

var (
	// ErrNotFound is returned by [Graph.State] and [Graph.BestNeighbor]
	// when the state ID was never allocated. Every ID handed out by a
	// Graph is valid by construction, so hitting this indicates a
	// caller bug rather than a recoverable condition.
	ErrNotFound = errors.New("state not found")

	// ErrNoMoves is returned by [Graph.BestNeighbor] when the state has
	// no outgoing edges, so no neighbor can be picked.
	ErrNoMoves = errors.New("state has no moves")

	// ErrMalformed is returned by [NewGraph] when the supplied states do
	// not form a consistent graph.
	ErrMalformed = errors.New("malformed state graph")
)

// StateID identifies a discovered state. IDs are dense, start at zero
// and follow discovery order, so they double as slice indexes.
type StateID int

// StartStateID is the well-known ID of the start position. The first
// board registered during a build is always the start board.
const StartStateID StateID = 0

// Edge is one legal slide out of a state. The source is implied by the
// state owning the edge. Sliding is reversible, so for every edge the
// target state holds a mirror edge whose move is the inverse.
type Edge struct {
	Move board.Move // The slide taken
	To   StateID    // State the slide leads to
}

// State is one registered board position. Board holds the canonical
// piece order, so edge enumeration over it is reproducible across runs.
// All fields are settled when Build returns; treat states as read-only
// views into the graph.
type State struct {
	ID         StateID
	Board      board.Board
	Solved     bool     // Goal piece sits on the goal cell
	ToSolution Distance // Moves to the nearest solved state
	FromStart  Distance // Moves from the start state
	Edges      []Edge   // Outgoing slides in generation order
}

// Graph is the fully explored state space of one puzzle. It is built
// once by [Build], never mutated afterwards, and safe for any number of
// concurrent readers.
type Graph struct {
	puzzle   board.Puzzle
	states   []*State
	index    map[board.Key]StateID
	incoming [][]StateID // reverse adjacency, aligned with states
	stats    Stats
}

// NewGraph reassembles a graph from previously built states, typically
// decoded from an exported analysis document. The graph takes ownership
// of the slice. State IDs must be dense and match slice positions, edge
// targets must be in range, and no two states may share a board.
// Summary figures are recomputed from the states; only the phase timings
// are taken from stats.
func NewGraph(p board.Puzzle, states []*State, stats Stats) (*Graph, error) {
	index := make(map[board.Key]StateID, len(states))
	incoming := make([][]StateID, len(states))
	for i, st := range states {
		if st == nil {
			return nil, fmt.Errorf("%w: state %d is nil", ErrMalformed, i)
		}
		if st.ID != StateID(i) {
			return nil, fmt.Errorf("%w: state %d has ID %v", ErrMalformed, i, st.ID)
		}
		st.Board = st.Board.Canonical()
		key := st.Board.Key()
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("%w: state %d repeats an earlier board", ErrMalformed, i)
		}
		index[key] = st.ID
		for _, e := range st.Edges {
			if e.To < 0 || int(e.To) >= len(states) {
				return nil, fmt.Errorf("%w: state %d has an edge to unknown state %d", ErrMalformed, i, e.To)
			}
			incoming[e.To] = append(incoming[e.To], st.ID)
		}
	}

	recomputed := collectStats(states)
	recomputed.ExploreTime = stats.ExploreTime
	recomputed.PropagateTime = stats.PropagateTime

	return &Graph{
		puzzle:   p,
		states:   states,
		index:    index,
		incoming: incoming,
		stats:    recomputed,
	}, nil
}

// Puzzle returns the puzzle the graph was built from.
func (g *Graph) Puzzle() board.Puzzle { return g.puzzle }

// StartID returns the ID of the start position, always StartStateID.
func (g *Graph) StartID() StateID { return StartStateID }

// StateCount returns the number of discovered states.
func (g *Graph) StateCount() int { return len(g.states) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.stats.Edges }

// Stats returns summary figures collected during the build.
func (g *Graph) Stats() Stats { return g.stats }

// State returns the state with the given ID, or ErrNotFound if the ID
// was never allocated.
func (g *Graph) State(id StateID) (*State, error) {
	if id < 0 || int(id) >= len(g.states) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return g.states[id], nil
}

// Find returns the ID of the state matching the board, if the board was
// discovered during the build. Any piece ordering matches: lookup goes
// through the canonical key.
func (g *Graph) Find(b board.Board) (StateID, bool) {
	id, ok := g.index[b.Key()]
	return id, ok
}

// Solutions returns the IDs of all solved states in ascending order.
func (g *Graph) Solutions() []StateID {
	var out []StateID
	for _, st := range g.states {
		if st.Solved {
			out = append(out, st.ID)
		}
	}
	return out
}

// BestNeighbor returns the edge out of the state whose target is
// closest to a solution, breaking ties in favor of the earliest edge in
// generation order. Returns ErrNoMoves for states without edges.
func (g *Graph) BestNeighbor(id StateID) (Edge, error) {
	st, err := g.State(id)
	if err != nil {
		return Edge{}, err
	}
	if len(st.Edges) == 0 {
		return Edge{}, fmt.Errorf("%w: state %d", ErrNoMoves, id)
	}
	best := st.Edges[0]
	bestDist := g.states[best.To].ToSolution
	for _, e := range st.Edges[1:] {
		if d := g.states[e.To].ToSolution; d.Less(bestDist) {
			best, bestDist = e, d
		}
	}
	return best, nil
}
