// Package http exposes the read side of the service as a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/safesync/internal/config"
	"github.com/BrunoTulio/safesync/internal/model"
	"github.com/BrunoTulio/safesync/internal/utils"
	"github.com/BrunoTulio/safesync/internal/version"
)

type Backend interface {
	Scripts() ([]model.ScriptEntry, error)
	Script(name string) (string, error)
	Tasks(ctx context.Context) ([]model.ScheduledTaskRecord, error)
	ReloadSecrets() (config.Credentials, error)
	Busy() bool
}

type Server struct {
	backend Backend
	log     logr.Logger
	mux     *http.ServeMux

	// schtasks and the script directory are not safe for concurrent
	// callers, so requests are served one at a time.
	mu sync.Mutex
}

type ScriptResponse struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
	Modified  string `json:"modified"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(backend Backend, log logr.Logger) http.Handler {
	s := &Server{
		backend: backend,
		log:     log,
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /scripts", s.handleScripts)
	s.mux.HandleFunc("GET /scripts/{name}", s.handleScript)
	s.mux.HandleFunc("GET /tasks", s.handleTasks)
	s.mux.HandleFunc("POST /secrets/reload", s.handleReload)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "OK",
		"running": s.backend.Busy(),
		"version": version.Get().Version,
	})
}

func (s *Server) handleScripts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.Scripts()
	if err != nil {
		s.fail(w, "list scripts", err)
		return
	}

	out := make([]ScriptResponse, len(entries))
	for i, e := range entries {
		out[i] = ScriptResponse{
			Name:      e.Name,
			SizeBytes: e.Size,
			SizeHuman: utils.FormatBytes(e.Size),
			Modified:  e.ModTime.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(out),
		"scripts":   out,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	content, err := s.backend.Script(r.PathValue("name"))
	if err != nil {
		s.fail(w, "read script", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.backend.Tasks(r.Context())
	if err != nil {
		s.fail(w, "list tasks", err)
		return
	}

	if tasks == nil {
		tasks = []model.ScheduledTaskRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(tasks),
		"tasks":     tasks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	creds, err := s.backend.ReloadSecrets()
	if err != nil {
		s.fail(w, "reload secrets", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_key_id": utils.MaskSecret(creds.AccessKeyID),
		"bucket":        creds.BucketName,
		"loaded":        !creds.IsEmpty(),
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Errorf("%s failed: %v", op, err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
