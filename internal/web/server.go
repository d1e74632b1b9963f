package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vcfheader/internal/header"
	"vcfheader/internal/model"
	"vcfheader/internal/source"
)

//go:embed help.md
var helpMD string

// Server exposes merge runs over HTTP.
type Server struct {
	orch   *header.Orchestrator
	logger *log.Logger

	// Files some earlier /api/headers request resolved. Line context is
	// only served for these.
	mu    sync.RWMutex
	known map[string]struct{}
}

// NewServer wraps an orchestrator. logger may be nil.
func NewServer(orch *header.Orchestrator, logger *log.Logger) *Server {
	if logger == nil {
		logger = orch.Logger
	}
	return &Server{orch: orch, logger: logger, known: map[string]struct{}{}}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHelp)
	r.Route("/api", func(r chi.Router) {
		r.Get("/headers", s.handleHeaders)
		r.Get("/line-context", s.handleLineContext)
	})
	return r
}

// StartServer serves on addr until the listener fails.
func StartServer(addr string, orch *header.Orchestrator, logger *log.Logger) error {
	s := NewServer(orch, logger)
	fmt.Printf("Starting vcfheader web server at http://%s\n", addr)
	return http.ListenAndServe(addr, s.Routes())
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	File  string `json:"file,omitempty"`
	Line  int    `json:"line,omitempty"`
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		http.Error(w, "pattern is required", http.StatusBadRequest)
		return
	}

	res, err := s.orch.Run(r.Context(), pattern)
	if err != nil {
		resp := errorResponse{Error: err.Error(), Kind: "error"}
		status := http.StatusInternalServerError

		var fe *header.FormatError
		var ie *header.IncompatibleHeaderError
		switch {
		case errors.Is(err, doublestar.ErrBadPattern):
			resp.Kind = "pattern"
			status = http.StatusBadRequest
		case errors.As(err, &fe):
			resp.Kind, resp.File, resp.Line = "format", fe.File, fe.Line
			status = http.StatusUnprocessableEntity
			s.remember(fe.File)
		case errors.As(err, &ie):
			resp.Kind = "incompatible"
			status = http.StatusUnprocessableEntity
			s.remember(ie.First.Source, ie.Second.Source)
		}
		if s.logger != nil {
			s.logger.Warn("merge request failed", "pattern", pattern, "error", err)
		}
		writeJSON(w, status, resp)
		return
	}

	s.remember(res.Files...)
	writeJSON(w, http.StatusOK, struct {
		header.Result
		Version string `json:"version"`
	}{
		Result:  res,
		Version: model.Version,
	})
}

func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	lineNumStr := r.URL.Query().Get("line")
	if path == "" || lineNumStr == "" {
		http.Error(w, "path and line are required", http.StatusBadRequest)
		return
	}

	lineNum, err := strconv.Atoi(lineNumStr)
	if err != nil {
		http.Error(w, "invalid line number", http.StatusBadRequest)
		return
	}
	if !s.isKnown(path) {
		http.Error(w, "path was not resolved by a previous request", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, source.GetLineContext(r.Context(), s.orch.Opener, path, lineNum))
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	// Use the embedded help content
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Server) remember(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		if p != "" {
			s.known[p] = struct{}{}
		}
	}
}

func (s *Server) isKnown(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[path]
	return ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
