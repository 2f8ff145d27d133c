package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gridlock/pkg/solver"
)

// document is the top-level analysis wire format.
type document struct {
	Puzzle string     `json:"puzzle,omitempty"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Goal   placement  `json:"goal"`
	Stats  statsDoc   `json:"stats"`
	States []stateDoc `json:"states"`
}

// placement encodes a sized rectangle at a cell, matching the puzzle
// TOML schema.
type placement struct {
	Size string `json:"size"`
	Cell [2]int `json:"cell"`
}

type statsDoc struct {
	States        int   `json:"states"`
	Edges         int   `json:"edges"`
	Solutions     int   `json:"solutions"`
	Unreachable   int   `json:"unreachable"`
	MaxToSolution *int  `json:"max_to_solution,omitempty"`
	Deepest       *int  `json:"deepest,omitempty"`
	MaxFromStart  int   `json:"max_from_start"`
	Histogram     []int `json:"histogram,omitempty"`
	ExploreMS     int64 `json:"explore_ms"`
	PropagateMS   int64 `json:"propagate_ms"`
}

type stateDoc struct {
	ID         int         `json:"id"`
	Pieces     []placement `json:"pieces"`
	Solved     bool        `json:"solved,omitempty"`
	Reachable  *bool       `json:"reachable,omitempty"`
	ToSolution *int        `json:"to_solution,omitempty"`
	FromStart  int         `json:"from_start"`
	Edges      []edgeDoc   `json:"edges,omitempty"`
}

type edgeDoc struct {
	Size  string `json:"size"`
	Cell  [2]int `json:"cell"`
	Dir   string `json:"dir"`
	Steps int    `json:"steps"`
	To    int    `json:"to"`
}

// WriteAnalysis encodes a graph as an indented JSON document and writes
// it to w. The output covers the puzzle, the summary statistics, and
// every state with its distances and outgoing slides. It can be
// re-imported with [ReadAnalysis] for round-trip processing.
func WriteAnalysis(g *solver.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalAnalysis encodes a graph as JSON bytes.
// This is a convenience wrapper around [WriteAnalysis] for cache storage.
func MarshalAnalysis(g *solver.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteAnalysis(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportAnalysis writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteAnalysis] for file-based output.
func ExportAnalysis(g *solver.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAnalysis(g, f)
}

func buildDocument(g *solver.Graph) document {
	p := g.Puzzle()
	doc := document{
		Puzzle: p.Name,
		Width:  p.Board.Width,
		Height: p.Board.Height,
		Goal:   placement{Size: p.Goal.Size.String(), Cell: [2]int{p.Goal.At.X, p.Goal.At.Y}},
		Stats:  buildStats(g.Stats()),
		States: make([]stateDoc, g.StateCount()),
	}
	for i := range g.StateCount() {
		st, _ := g.State(solver.StateID(i))
		doc.States[i] = buildState(st)
	}
	return doc
}

func buildStats(s solver.Stats) statsDoc {
	sd := statsDoc{
		States:       s.States,
		Edges:        s.Edges,
		Solutions:    s.Solutions,
		Unreachable:  s.Unreachable,
		MaxFromStart: int(s.MaxFromStart),
		Histogram:    s.Histogram,
		ExploreMS:    s.ExploreTime.Milliseconds(),
		PropagateMS:  s.PropagateTime.Milliseconds(),
	}
	if s.MaxToSolution.Reachable() {
		d := int(s.MaxToSolution)
		deep := int(s.Deepest)
		sd.MaxToSolution = &d
		sd.Deepest = &deep
	}
	return sd
}

func buildState(s *solver.State) stateDoc {
	sd := stateDoc{
		ID:        int(s.ID),
		Pieces:    make([]placement, len(s.Board.Pieces)),
		Solved:    s.Solved,
		FromStart: int(s.FromStart),
	}
	for i, p := range s.Board.Pieces {
		sd.Pieces[i] = placement{Size: p.Size.String(), Cell: [2]int{p.At.X, p.At.Y}}
	}
	if s.ToSolution.Reachable() {
		d := int(s.ToSolution)
		sd.ToSolution = &d
	} else {
		f := false
		sd.Reachable = &f
	}
	if len(s.Edges) > 0 {
		sd.Edges = make([]edgeDoc, len(s.Edges))
		for i, e := range s.Edges {
			sd.Edges[i] = edgeDoc{
				Size:  e.Move.Size.String(),
				Cell:  [2]int{e.Move.From.X, e.Move.From.Y},
				Dir:   e.Move.Dir.String(),
				Steps: e.Move.Steps,
				To:    int(e.To),
			}
		}
	}
	return sd
}
