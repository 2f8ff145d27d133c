// Package solver builds the complete state space of a sliding-block
// puzzle and answers shortest-distance queries against it.
//
// Build explores every board reachable from the start position with a
// breadth-first search, deduplicating positions that differ only in
// which same-size piece sits where, and recording one directed edge per
// legal slide, including slides into already-known states. A second,
// multi-source breadth-first pass then walks the recorded edges
// backwards from every solved state and assigns each state its exact
// distance to the nearest solution; a third pass assigns distances from
// the start. The returned Graph is immutable and safe for concurrent
// readers.
//
// The two traversals are deliberately single-threaded: every discovered
// board has to be serialized through the deduplication index anyway, so
// the phases run to completion once started and the context is only
// consulted between them.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/observability"
)

// ErrTooLarge is returned by [Build] when exploration would exceed
// Options.MaxStates. No partial graph is returned.
var ErrTooLarge = errors.New("state space exceeds limit")

// DefaultMaxStates caps exploration when Options.MaxStates is zero.
// The classic board discovers well under 30k states; the cap exists to
// fail cleanly on inputs whose state space does not fit in memory.
const DefaultMaxStates = 10_000_000

// Options tunes a build.
type Options struct {
	// MaxStates aborts the build once the registry would grow past
	// this many states. Zero means DefaultMaxStates; negative means
	// no limit.
	MaxStates int

	// Logger receives phase summaries. Nil discards them.
	Logger *log.Logger
}

// Build explores every board reachable from the puzzle's start position
// and computes solution and start distances for all of them. The puzzle
// is validated first; an invalid board or goal fails fast before any
// traversal. The context flows to observability hooks and is checked
// between phases, not inside them.
func Build(ctx context.Context, p board.Puzzle, opts Options) (*Graph, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	maxStates := opts.MaxStates
	if maxStates == 0 {
		maxStates = DefaultMaxStates
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate puzzle: %w", err)
	}

	bl := &builder{
		goal:      p.Goal,
		index:     make(map[board.Key]StateID),
		maxStates: maxStates,
	}

	observability.Solver().OnExploreStart(ctx, p.Name)
	exploreStart := time.Now()
	err := bl.explore(p.Board)
	exploreTime := time.Since(exploreStart)
	observability.Solver().OnExploreComplete(ctx, p.Name, len(bl.states), bl.edges, exploreTime, err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("explored state space",
		"puzzle", p.Name,
		"states", len(bl.states),
		"edges", bl.edges,
		"duration", exploreTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Solver().OnPropagateStart(ctx, p.Name, len(bl.states))
	propagateStart := time.Now()
	solutions := bl.propagate()
	bl.measureFromStart()
	propagateTime := time.Since(propagateStart)

	stats := collectStats(bl.states)
	stats.ExploreTime = exploreTime
	stats.PropagateTime = propagateTime
	observability.Solver().OnPropagateComplete(ctx, p.Name, solutions, stats.Unreachable, propagateTime, nil)
	opts.Logger.Info("propagated distances",
		"puzzle", p.Name,
		"solutions", solutions,
		"unreachable", stats.Unreachable,
		"max_distance", stats.MaxToSolution,
		"duration", propagateTime)

	return &Graph{
		puzzle:   p,
		states:   bl.states,
		index:    bl.index,
		incoming: bl.incoming,
		stats:    stats,
	}, nil
}

// builder is the arena a single build works in. Nothing escapes it
// except through the Graph it becomes, so independent builds never
// share state.
type builder struct {
	goal      board.Goal
	states    []*State
	index     map[board.Key]StateID
	incoming  [][]StateID
	edges     int
	maxStates int
}

// register canonicalizes the board and returns its state ID, allocating
// the next dense ID on first sight.
func (bl *builder) register(b board.Board) (StateID, bool, error) {
	key := b.Key()
	if id, ok := bl.index[key]; ok {
		return id, false, nil
	}
	if bl.maxStates > 0 && len(bl.states) >= bl.maxStates {
		return 0, false, fmt.Errorf("%w: more than %d states", ErrTooLarge, bl.maxStates)
	}
	id := StateID(len(bl.states))
	canon := b.Canonical()
	bl.states = append(bl.states, &State{
		ID:         id,
		Board:      canon,
		Solved:     canon.Solved(bl.goal),
		ToSolution: DistanceUnknown,
		FromStart:  DistanceUnknown,
	})
	bl.index[key] = id
	bl.incoming = append(bl.incoming, nil)
	return id, true, nil
}

// explore runs the breadth-first discovery loop over an explicit FIFO
// worklist. Every state is enqueued exactly once; edges are recorded
// for every slide, including slides into states seen earlier, so the
// finished graph carries its full connectivity rather than a spanning
// tree.
func (bl *builder) explore(start board.Board) error {
	if _, _, err := bl.register(start); err != nil {
		return err
	}
	queue := []StateID{StartStateID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		cur := bl.states[id]
		for _, s := range cur.Board.Slides() {
			nid, isNew, err := bl.register(s.Board)
			if err != nil {
				return err
			}
			if isNew {
				queue = append(queue, nid)
			}
			cur.Edges = append(cur.Edges, Edge{Move: s.Move, To: nid})
			bl.incoming[nid] = append(bl.incoming[nid], id)
			bl.edges++
		}
	}
	return nil
}

// propagate assigns every state its distance to the nearest solved
// state: a breadth-first pass seeded with all solved states at distance
// zero, walking edges backwards. Slides are reversible and cost one
// move in either direction, so the backward level at which a state is
// first reached is its true shortest distance. States never reached
// keep the unreachable sentinel. Returns the number of seeds.
func (bl *builder) propagate() int {
	var queue []StateID
	for _, st := range bl.states {
		if st.Solved {
			st.ToSolution = 0
			queue = append(queue, st.ID)
		}
	}
	solutions := len(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		next := bl.states[id].ToSolution + 1
		for _, pred := range bl.incoming[id] {
			p := bl.states[pred]
			if p.ToSolution != DistanceUnknown {
				continue
			}
			p.ToSolution = next
			queue = append(queue, pred)
		}
	}

	for _, st := range bl.states {
		if st.ToSolution == DistanceUnknown {
			st.ToSolution = DistanceUnreachable
		}
	}
	return solutions
}

// measureFromStart assigns forward breadth-first depths from the start
// state. Every registered state was discovered from the start, so the
// pass always reaches all of them.
func (bl *builder) measureFromStart() {
	if len(bl.states) == 0 {
		return
	}
	bl.states[StartStateID].FromStart = 0
	queue := []StateID{StartStateID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		next := bl.states[id].FromStart + 1
		for _, e := range bl.states[id].Edges {
			t := bl.states[e.To]
			if t.FromStart != DistanceUnknown {
				continue
			}
			t.FromStart = next
			queue = append(queue, e.To)
		}
	}
}
