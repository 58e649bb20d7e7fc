// Package server exposes the tool registry over HTTP.
//
// Every tool is reachable as POST /tools/{name} with a JSON body of the form
// {"data": <tool payload>}. The tool's Result envelope is returned verbatim
// as the response body; callers inspect its status field, not the HTTP
// status, which is 200 for any executed tool. Authentication failures,
// unknown tools, and malformed bodies are the only HTTP-level errors.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shineum/mcp-agent-lite/internal/tools"
)

// apiKeyHeader is the shared-secret header checked on every tool request.
const apiKeyHeader = "X-API-Key"

// Server routes tool execution requests to the registry.
type Server struct {
	name     string
	apiKey   string
	registry *tools.Registry
	logger   *slog.Logger
	router   chi.Router
}

// New creates a Server for the given registry. If apiKey is empty,
// authentication is disabled.
func New(name, apiKey string, registry *tools.Registry, logger *slog.Logger) *Server {
	s := &Server{
		name:     name,
		apiKey:   apiKey,
		registry: registry,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleExecuteTool)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireAPIKey rejects requests whose shared-secret header does not match
// the configured key. The comparison is constant-time.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" {
			got := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.apiKey)) != 1 {
				s.respondJSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "invalid API key",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// executeRequest is the body of a tool execution call.
type executeRequest struct {
	Data json.RawMessage `json:"data"`
}

func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, ok := s.registry.Get(name)
	if !ok {
		s.respondJSON(w, http.StatusNotFound, map[string]string{
			"detail": fmt.Sprintf("tool %s not found", name),
		})
		return
	}

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{
			"detail": "invalid JSON body",
		})
		return
	}
	if len(req.Data) == 0 {
		req.Data = json.RawMessage(`{}`)
	}

	start := time.Now()
	result := def.Handler(r.Context(), req.Data)

	s.logger.Info("tool executed",
		"tool", name,
		"status", result.Status,
		"duration", time.Since(start),
		"request_id", middleware.GetReqID(r.Context()),
	)

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"tools": s.registry.List(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"agent":  s.name,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write response", "error", err)
	}
}
