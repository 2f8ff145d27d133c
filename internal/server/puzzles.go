package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/library"
)

// puzzleList is the response shape of the list endpoint.
type puzzleList struct {
	Puzzles []library.Document `json:"puzzles"`
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	docs, err := s.library.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "list puzzles"))
		return
	}
	if docs == nil {
		docs = []library.Document{}
	}
	s.writeJSON(w, http.StatusOK, puzzleList{Puzzles: docs})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePuzzleName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.library.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "load puzzle %q", name))
		return
	}
	if doc == nil {
		s.writeError(w, r, errors.New(errors.ErrCodePuzzleNotFound, "no puzzle named %q", name))
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutPuzzle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePuzzleName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var doc library.Document
	if err := s.decodeJSON(w, r, &doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The URL owns the name; stored documents never carry client flags.
	doc.Name = name
	doc.Builtin = false
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPuzzle, err, "puzzle %q does not decode", name))
		return
	}

	now := time.Now()
	existing, err := s.library.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "load puzzle %q", name))
		return
	}
	status := http.StatusCreated
	if existing != nil {
		if existing.Builtin {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "built-in board %q is read-only, pick another name", name))
			return
		}
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
		status = http.StatusOK
	} else {
		doc.ID = library.GenerateID()
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.library.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "store puzzle %q", name))
		return
	}
	s.writeJSON(w, status, doc)
}

func (s *Server) handleDeletePuzzle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePuzzleName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	existing, err := s.library.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "load puzzle %q", name))
		return
	}
	if existing != nil && existing.Builtin {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "built-in board %q is read-only", name))
		return
	}

	if err := s.library.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "delete puzzle %q", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
