package server

import (
	"net/http"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// solveRequest solves either a library puzzle (by name) or an inline
// board (rows art plus goal). Exactly one of the two must be present.
type solveRequest struct {
	Puzzle string `json:"puzzle,omitempty"`

	Name string    `json:"name,omitempty"`
	Rows []string  `json:"rows,omitempty"`
	Goal *goalSpec `json:"goal,omitempty"`

	MaxStates int  `json:"max_states,omitempty"`
	Refresh   bool `json:"refresh,omitempty"`
}

type goalSpec struct {
	Size string `json:"size"`
	Cell [2]int `json:"cell"`
}

// solveResponse summarizes a solved graph. The full per-state document
// lives under /api/graphs.
type solveResponse struct {
	Puzzle        string `json:"puzzle,omitempty"`
	GraphHash     string `json:"graph_hash"`
	States        int    `json:"states"`
	Edges         int    `json:"edges"`
	Solutions     int    `json:"solutions"`
	Unreachable   int    `json:"unreachable"`
	Solvable      bool   `json:"solvable"`
	MinMoves      *int   `json:"min_moves,omitempty"`
	MaxToSolution *int   `json:"max_to_solution,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.resolveSolveTarget(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	maxStates := s.maxStates
	if req.MaxStates > 0 && req.MaxStates < maxStates {
		maxStates = req.MaxStates
	}
	g, err := s.runner.Solve(r.Context(), pipeline.Options{
		Puzzle:    p,
		MaxStates: maxStates,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, r, wrapSolveError(err, p.Name))
		return
	}

	s.writeJSON(w, http.StatusOK, buildSolveResponse(g))
}

// resolveSolveTarget picks the puzzle the request names or defines.
func (s *Server) resolveSolveTarget(r *http.Request, req solveRequest) (board.Puzzle, error) {
	switch {
	case req.Puzzle != "" && len(req.Rows) > 0:
		return board.Puzzle{}, errors.New(errors.ErrCodeInvalidInput, "puzzle and rows are mutually exclusive")
	case req.Puzzle != "":
		return s.loadPuzzle(r.Context(), req.Puzzle)
	case len(req.Rows) > 0:
		return inlinePuzzle(req)
	default:
		return board.Puzzle{}, errors.New(errors.ErrCodeInvalidInput, "need a puzzle name or rows")
	}
}

// inlinePuzzle decodes an ad-hoc board from the request body.
func inlinePuzzle(req solveRequest) (board.Puzzle, error) {
	if req.Goal == nil {
		return board.Puzzle{}, errors.New(errors.ErrCodeInvalidInput, "inline boards need a goal")
	}
	b, err := board.FromRows(req.Rows...)
	if err != nil {
		return board.Puzzle{}, errors.Wrap(errors.ErrCodeInvalidBoard, err, "invalid rows")
	}
	size, err := board.ParseSize(req.Goal.Size)
	if err != nil {
		return board.Puzzle{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid goal size")
	}
	name := req.Name
	if name == "" {
		name = "inline"
	}
	p := board.Puzzle{
		Name:  name,
		Board: b,
		Goal:  board.Goal{Size: size, At: board.Cell{X: req.Goal.Cell[0], Y: req.Goal.Cell[1]}},
	}
	if err := p.Validate(); err != nil {
		return board.Puzzle{}, errors.Wrap(errors.ErrCodeInvalidPuzzle, err, "invalid puzzle")
	}
	return p, nil
}

func buildSolveResponse(g *solver.Graph) solveResponse {
	stats := g.Stats()
	resp := solveResponse{
		Puzzle:      g.Puzzle().Name,
		GraphHash:   pipeline.PuzzleHash(g.Puzzle()),
		States:      stats.States,
		Edges:       stats.Edges,
		Solutions:   stats.Solutions,
		Unreachable: stats.Unreachable,
	}
	if start, err := g.State(g.StartID()); err == nil && start.ToSolution.Reachable() {
		resp.Solvable = true
		d := int(start.ToSolution)
		resp.MinMoves = &d
	}
	if stats.MaxToSolution.Reachable() {
		d := int(stats.MaxToSolution)
		resp.MaxToSolution = &d
	}
	return resp
}
