package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// artifactContentTypes maps render formats to their media types.
var artifactContentTypes = map[string]string{
	pipeline.FormatJSON: "application/json; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

// handleGraphAnalysis serves the full analysis document for a library
// puzzle.
func (s *Server) handleGraphAnalysis(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON)
}

// handleGraphArtifact serves one rendered artifact for a library puzzle.
func (s *Server) handleGraphArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unknown artifact format"))
		return
	}
	s.serveArtifact(w, r, format)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format string) {
	name := chi.URLParam(r, "name")
	p, err := s.loadPuzzle(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Puzzle:    p,
		MaxStates: s.maxStates,
		Formats:   []string{format},
		RankDir:   r.URL.Query().Get("rankdir"),
		Labels:    r.URL.Query().Get("labels") == "true",
		Refresh:   r.URL.Query().Get("refresh") == "true",
		Logger:    s.logger,
	}
	if opts.RankDir != "" {
		if err := pipeline.ValidateRankDir(opts.RankDir); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown rankdir"))
			return
		}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, wrapSolveError(err, name))
		return
	}

	s.writeBlob(w, artifactContentTypes[format], result.Artifacts[format])
}
