package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/phishcheck/internal/cache"
	"github.com/example/phishcheck/internal/engine"
	"github.com/example/phishcheck/internal/events"
)

// Server exposes the evaluation engine over HTTP.
type Server struct {
	engine  *engine.Engine
	cache   *cache.Cache
	logger  *slog.Logger
	emitter *events.Emitter
}

// New builds a server. emitter may be nil to disable the NDJSON audit log.
func New(eng *engine.Engine, c *cache.Cache, logger *slog.Logger, emitter *events.Emitter) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: eng, cache: c, logger: logger, emitter: emitter}
}

// Routes returns the chi router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.cors)
	r.Use(s.requestLog)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Get("/health", s.handleHealth)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	})

	return r
}

type checkRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	res, err := s.engine.Check(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("check failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.Info("analysis complete",
		"url", req.URL, "verdict", string(res.Verdict.Band),
		"riskScore", res.Verdict.RiskScore, "cached", res.Cached)
	if s.emitter != nil {
		if err := s.emitter.Emit(events.Evaluation(req.URL, res.Verdict, res.Cached)); err != nil {
			s.logger.Warn("audit log write failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cached":  res.Cached,
		"data":    res.Verdict,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "healthy",
		"cache":   s.cache.Stats(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name": "phishcheck API",
		"endpoints": map[string]string{
			"check":  "POST /api/check",
			"health": "GET /api/health",
		},
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}
