package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// ReadAnalysis decodes an analysis document from r and reassembles the
// state graph.
//
// Every state board is validated against the document's grid, edge moves
// must decode to legal move shapes, and the state list must satisfy the
// structural checks of [solver.NewGraph]. Derivable fields are not
// trusted: solved flags are recomputed from the goal and the summary
// statistics are recomputed from the states, so a hand-edited document
// cannot produce a graph that disagrees with itself.
//
// Errors are wrapped with the index of the state or piece that caused
// the problem. ReadAnalysis does not close r.
func ReadAnalysis(r io.Reader) (*solver.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.States) == 0 {
		return nil, fmt.Errorf("document has no states")
	}

	goalPiece, err := parsePlacement(doc.Goal)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	goal := board.Goal{Size: goalPiece.Size, At: goalPiece.At}

	states := make([]*solver.State, len(doc.States))
	for i, sd := range doc.States {
		st, err := parseState(sd, doc.Width, doc.Height, goal)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", i, err)
		}
		states[i] = st
	}

	p := board.Puzzle{
		Name:  doc.Puzzle,
		Board: states[solver.StartStateID].Board,
		Goal:  goal,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	stats := solver.Stats{
		ExploreTime:   time.Duration(doc.Stats.ExploreMS) * time.Millisecond,
		PropagateTime: time.Duration(doc.Stats.PropagateMS) * time.Millisecond,
	}
	return solver.NewGraph(p, states, stats)
}

// UnmarshalAnalysis decodes an analysis document from raw bytes.
// This is a convenience wrapper around [ReadAnalysis] for cache reads.
func UnmarshalAnalysis(data []byte) (*solver.Graph, error) {
	return ReadAnalysis(bytes.NewReader(data))
}

// ImportAnalysis reads a JSON file at path and returns the reassembled
// graph.
//
// ImportAnalysis opens the file, decodes it using [ReadAnalysis], and
// closes the file. Open and decode failures are wrapped with the file
// path for context.
func ImportAnalysis(path string) (*solver.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadAnalysis(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

func parsePlacement(pl placement) (board.Piece, error) {
	size, err := board.ParseSize(pl.Size)
	if err != nil {
		return board.Piece{}, err
	}
	return board.Piece{Size: size, At: board.Cell{X: pl.Cell[0], Y: pl.Cell[1]}}, nil
}

func parseState(sd stateDoc, width, height int, goal board.Goal) (*solver.State, error) {
	b := board.Board{Width: width, Height: height, Pieces: make([]board.Piece, len(sd.Pieces))}
	for i, pl := range sd.Pieces {
		p, err := parsePlacement(pl)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		b.Pieces[i] = p
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	st := &solver.State{
		ID:         solver.StateID(sd.ID),
		Board:      b,
		Solved:     b.Solved(goal),
		ToSolution: solver.DistanceUnreachable,
		FromStart:  solver.Distance(sd.FromStart),
	}
	if sd.ToSolution != nil {
		st.ToSolution = solver.Distance(*sd.ToSolution)
	}
	for i, ed := range sd.Edges {
		e, err := parseEdge(ed)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		st.Edges = append(st.Edges, e)
	}
	return st, nil
}

func parseEdge(ed edgeDoc) (solver.Edge, error) {
	size, err := board.ParseSize(ed.Size)
	if err != nil {
		return solver.Edge{}, err
	}
	dir, err := board.ParseDir(ed.Dir)
	if err != nil {
		return solver.Edge{}, err
	}
	if ed.Steps < 1 {
		return solver.Edge{}, fmt.Errorf("move wants at least one step, got %d", ed.Steps)
	}
	return solver.Edge{
		Move: board.Move{
			Size:  size,
			From:  board.Cell{X: ed.Cell[0], Y: ed.Cell[1]},
			Dir:   dir,
			Steps: ed.Steps,
		},
		To: solver.StateID(ed.To),
	}, nil
}
