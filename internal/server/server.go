// Package server exposes the analysis pipeline, the puzzle library and
// play sessions over HTTP.
//
// The API is JSON throughout. Solved graphs come from the shared
// pipeline Runner, so the server and the CLI populate the same cache
// and never solve the same board twice. Routes:
//
//	GET    /healthz                    liveness probe
//	GET    /api/puzzles                list library documents
//	GET    /api/puzzles/{name}         fetch one document
//	PUT    /api/puzzles/{name}         create or replace a document
//	DELETE /api/puzzles/{name}         remove a document
//	POST   /api/solve                  solve a named or inline puzzle
//	GET    /api/graphs/{name}          full analysis document
//	GET    /api/graphs/{name}/{format} rendered artifact (dot, svg, png)
//	POST   /api/sessions               start playing a library puzzle
//	GET    /api/sessions/{id}          current position and legal moves
//	DELETE /api/sessions/{id}          abandon a session
//	POST   /api/sessions/{id}/moves    apply a slide
//	GET    /api/sessions/{id}/hint     best move from the current position
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/library"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/session"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// Config assembles a server from its collaborators. Zero fields get
// working in-process defaults, so tests can construct a server from an
// empty config.
type Config struct {
	// Runner executes solve/layout/render with caching. Nil means an
	// uncached runner.
	Runner *pipeline.Runner

	// Library stores puzzle documents. Nil means an in-memory store
	// seeded with the built-in boards.
	Library library.Store

	// Sessions stores play sessions. Nil means an in-memory store.
	Sessions session.Store

	// Logger receives request and handler logs. Nil means the default
	// logger.
	Logger *log.Logger

	// SessionTTL is the lifetime of new sessions. Zero means
	// session.DefaultTTL.
	SessionTTL time.Duration

	// MaxStates caps solves triggered through the API. Zero means
	// pipeline.DefaultMaxStates.
	MaxStates int
}

// Server handles the HTTP API. Create one with New and mount Router.
type Server struct {
	runner     *pipeline.Runner
	library    library.Store
	sessions   session.Store
	logger     *log.Logger
	sessionTTL time.Duration
	maxStates  int
}

// New creates a server, filling missing collaborators with in-process
// defaults.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	lib := cfg.Library
	if lib == nil {
		mem := library.NewMemoryStore()
		_ = library.SeedBuiltins(context.Background(), mem)
		lib = mem
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	maxStates := cfg.MaxStates
	if maxStates == 0 {
		maxStates = pipeline.DefaultMaxStates
	}
	return &Server{
		runner:     runner,
		library:    lib,
		sessions:   sessions,
		logger:     logger,
		sessionTTL: ttl,
		maxStates:  maxStates,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/puzzles", func(r chi.Router) {
			r.Get("/", s.handleListPuzzles)
			r.Get("/{name}", s.handleGetPuzzle)
			r.Put("/{name}", s.handlePutPuzzle)
			r.Delete("/{name}", s.handleDeletePuzzle)
		})

		r.Post("/solve", s.handleSolve)

		r.Route("/graphs/{name}", func(r chi.Router) {
			r.Get("/", s.handleGraphAnalysis)
			r.Get("/{format}", s.handleGraphArtifact)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/moves", s.handleMove)
				r.Get("/hint", s.handleHint)
			})
		})
	})

	return r
}

// sessionSweepInterval is how often expired sessions are swept while
// the server runs.
const sessionSweepInterval = 5 * time.Minute

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully. Expired sessions are swept in the background;
// reads delete expired entries lazily, the sweep catches abandoned
// ones.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweepSessions(ctx)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// sweepSessions deletes expired sessions on an interval until the
// context is canceled. Stores that expire entries themselves, like
// redis, make this a no-op.
func (s *Server) sweepSessions(ctx context.Context) {
	t := time.NewTicker(sessionSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}

// Close releases the stores and the runner's cache.
func (s *Server) Close() error {
	err := s.runner.Close()
	if e := s.library.Close(); err == nil {
		err = e
	}
	if e := s.sessions.Close(); err == nil {
		err = e
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadPuzzle fetches a library document and decodes it.
func (s *Server) loadPuzzle(ctx context.Context, name string) (board.Puzzle, error) {
	if err := errors.ValidatePuzzleName(name); err != nil {
		return board.Puzzle{}, err
	}
	doc, err := s.library.Get(ctx, name)
	if err != nil {
		return board.Puzzle{}, errors.Wrap(errors.ErrCodeStore, err, "load puzzle %q", name)
	}
	if doc == nil {
		return board.Puzzle{}, errors.New(errors.ErrCodePuzzleNotFound, "no puzzle named %q", name)
	}
	p, err := doc.Puzzle()
	if err != nil {
		return board.Puzzle{}, errors.Wrap(errors.ErrCodeInvalidPuzzle, err, "puzzle %q does not decode", name)
	}
	return p, nil
}

// solveGraph solves a puzzle through the shared runner.
func (s *Server) solveGraph(ctx context.Context, p board.Puzzle, refresh bool) (*solver.Graph, error) {
	g, err := s.runner.Solve(ctx, pipeline.Options{
		Puzzle:    p,
		MaxStates: s.maxStates,
		Refresh:   refresh,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, wrapSolveError(err, p.Name)
	}
	return g, nil
}

// wrapSolveError attaches the matching error code to a solve failure.
func wrapSolveError(err error, name string) error {
	if stderrors.Is(err, solver.ErrTooLarge) {
		return errors.Wrap(errors.ErrCodeStateLimit, err, "puzzle %q is too large to solve", name)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "solve puzzle %q", name)
}
