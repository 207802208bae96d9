// Package ops serves the operational side channel: health probes, runtime
// stats, and pprof. It binds its own port so operational traffic never mixes
// with the analysis API.
package ops

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"epilag/internal/session"
)

// Server is the operational HTTP server.
type Server struct {
	router   *chi.Mux
	sessions *session.Store
	started  time.Time
	ready    func() bool
}

// NewServer creates the ops server. ready reports whether the main API is
// prepared to take traffic.
func NewServer(sessions *session.Store, ready func() bool) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		sessions: sessions,
		started:  time.Now(),
		ready:    ready,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)
	s.router.Get("/statsz", s.handleStats)

	s.router.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/{name}", func(w http.ResponseWriter, req *http.Request) {
			pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.ready != nil && !s.ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleStats exposes coarse runtime numbers for quick inspection during
// incident triage.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	writeJSON(w, http.StatusOK, map[string]any{
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"heap_bytes":     mem.HeapAlloc,
		"sessions":       s.sessions.Len(),
	})
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
