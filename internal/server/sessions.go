package server

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/session"
	"github.com/matzehuels/gridlock/pkg/solver"
)

type createSessionRequest struct {
	Puzzle string `json:"puzzle"`
}

// sessionResponse is the play-state view: where the session stands and
// every legal slide out of the position, graded by whether it helps.
type sessionResponse struct {
	ID        string    `json:"id"`
	Puzzle    string    `json:"puzzle"`
	MoveCount int       `json:"move_count"`
	State     stateView `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type stateView struct {
	ID         int        `json:"id"`
	Board      []string   `json:"board"`
	Solved     bool       `json:"solved"`
	Reachable  bool       `json:"reachable"`
	ToSolution *int       `json:"to_solution,omitempty"`
	FromStart  int        `json:"from_start"`
	Moves      []moveView `json:"moves"`
}

type moveView struct {
	Size  string `json:"size"`
	Cell  [2]int `json:"cell"`
	Dir   string `json:"dir"`
	Steps int    `json:"steps"`
	To    int    `json:"to"`
	Class string `json:"class"`
}

type moveRequest struct {
	Size  string `json:"size"`
	Cell  [2]int `json:"cell"`
	Dir   string `json:"dir"`
	Steps int    `json:"steps"`
}

type hintResponse struct {
	Move   moveView `json:"move"`
	Solves bool     `json:"solves"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.loadPuzzle(r.Context(), req.Puzzle)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.solveGraph(r.Context(), p, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := session.New(req.Puzzle, g.StartID(), s.sessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "store session"))
		return
	}

	s.writeJSON(w, http.StatusCreated, s.buildSessionResponse(sess, g))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, g, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.buildSessionResponse(sess, g))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, g, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req moveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := session.Move{Size: req.Size, Cell: req.Cell, Dir: req.Dir, Steps: req.Steps}.BoardMove()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidMove, err, "malformed move"))
		return
	}

	cur, err := g.State(solver.StateID(sess.Current))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "session points at unknown state"))
		return
	}
	next, err := cur.Board.Apply(m)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidMove, err, "move is not legal here"))
		return
	}
	nid, ok := g.Find(next)
	if !ok {
		// A legal slide always lands on a discovered state.
		s.writeError(w, r, errors.New(errors.ErrCodeInternal, "move leaves the state graph"))
		return
	}

	sess.Advance(m, nid)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "store session"))
		return
	}

	s.writeJSON(w, http.StatusOK, s.buildSessionResponse(sess, g))
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, g, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	best, err := g.BestNeighbor(solver.StateID(sess.Current))
	if err != nil {
		if stderrors.Is(err, solver.ErrNoMoves) {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidMove, err, "position has no moves"))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "pick best move"))
		return
	}

	target, err := g.State(best.To)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "resolve hint target"))
		return
	}
	cur, _ := g.State(solver.StateID(sess.Current))
	s.writeJSON(w, http.StatusOK, hintResponse{
		Move:   buildMoveView(g, cur, best),
		Solves: target.Solved,
	})
}

// loadSession resolves the session in the URL plus the graph of its
// puzzle.
func (s *Server) loadSession(r *http.Request) (*session.Session, *solver.Graph, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeStore, err, "load session")
	}
	if sess == nil {
		return nil, nil, errors.New(errors.ErrCodeSessionNotFound, "no session %q", id)
	}
	if sess.IsExpired() {
		return nil, nil, errors.New(errors.ErrCodeSessionExpired, "session %q has expired", id)
	}

	p, err := s.loadPuzzle(r.Context(), sess.Puzzle)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.solveGraph(r.Context(), p, false)
	if err != nil {
		return nil, nil, err
	}
	return sess, g, nil
}

func (s *Server) buildSessionResponse(sess *session.Session, g *solver.Graph) sessionResponse {
	resp := sessionResponse{
		ID:        sess.ID,
		Puzzle:    sess.Puzzle,
		MoveCount: sess.MoveCount(),
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}
	st, err := g.State(solver.StateID(sess.Current))
	if err != nil {
		// The state came from this graph; losing it means the library
		// entry changed under the session.
		s.logger.Error("session state missing from graph", "session", sess.ID, "state", sess.Current)
		return resp
	}
	resp.State = buildStateView(g, st)
	return resp
}

func buildStateView(g *solver.Graph, st *solver.State) stateView {
	view := stateView{
		ID:        int(st.ID),
		Board:     strings.Split(st.Board.String(), "\n"),
		Solved:    st.Solved,
		Reachable: st.ToSolution.Reachable(),
		FromStart: int(st.FromStart),
		Moves:     make([]moveView, 0, len(st.Edges)),
	}
	if st.ToSolution.Reachable() {
		d := int(st.ToSolution)
		view.ToSolution = &d
	}
	for _, e := range st.Edges {
		view.Moves = append(view.Moves, buildMoveView(g, st, e))
	}
	return view
}

func buildMoveView(g *solver.Graph, from *solver.State, e solver.Edge) moveView {
	view := moveView{
		Size:  e.Move.Size.String(),
		Cell:  [2]int{e.Move.From.X, e.Move.From.Y},
		Dir:   e.Move.Dir.String(),
		Steps: e.Move.Steps,
		To:    int(e.To),
	}
	if to, err := g.State(e.To); err == nil {
		view.Class = solver.Classify(from.ToSolution, to.ToSolution).String()
	}
	return view
}
