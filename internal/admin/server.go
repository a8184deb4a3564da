// Admin HTTP surface: health, live snapshot, report, and metrics.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"droneinspect-sim/internal/logging"
	"droneinspect-sim/internal/observability"
	"droneinspect-sim/internal/report"
	"droneinspect-sim/internal/sim"
)

type Server struct {
	Ctrl    *sim.Controller
	Metrics *observability.MissionCollector
	reports *report.Generator
}

func NewServer(ctrl *sim.Controller, metrics *observability.MissionCollector) *Server {
	return &Server{Ctrl: ctrl, Metrics: metrics, reports: report.NewGenerator()}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/report", s.handleReport)
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics.Handler())
	}
	return mux
}

// Start serves the admin endpoints until the context is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: s.routes()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("admin server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"mission_id": s.Ctrl.MissionID(),
		"done":       s.Ctrl.Done(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Ctrl.Snapshot())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep := s.reports.Generate(s.Ctrl.Snapshot())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
