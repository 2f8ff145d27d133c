package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridlock/pkg/errors"
)

// maxBodyBytes bounds request bodies. Puzzle documents and moves are
// tiny; anything near this limit is garbage.
const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// logRequests logs one line per request with the fields the rest of the
// application logs with.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// writeJSON encodes v as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeBlob writes a rendered artifact with its media type.
func (s *Server) writeBlob(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// writeError maps an error to its HTTP status and writes the standard
// error body. Server-side failures are logged; client errors are not.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
			"request_id", middleware.GetReqID(r.Context()))
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusForError maps error codes onto HTTP statuses. Errors without a
// code are internal by definition.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidBoard,
		errors.ErrCodeInvalidPuzzle,
		errors.ErrCodeInvalidMove,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeStateNotFound,
		errors.ErrCodePuzzleNotFound,
		errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSessionExpired:
		return http.StatusGone
	case errors.ErrCodeStateLimit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON request body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
