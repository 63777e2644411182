package watch

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Status is the /health response body.
type Status struct {
	Status    string    `json:"status"` // ok|failing|starting
	Target    string    `json:"target"`
	RunID     string    `json:"run_id,omitempty"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

func (r *Runner) router() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Get("/health", r.handleHealth)
	mux.Handle("/metrics", metrics.HTTPHandler(r.registry))
	return mux
}

func (r *Runner) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := r.Status()
	w.Header().Set("Content-Type", "application/json")
	if st.Status == "failing" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(st); err != nil {
		slog.Debug("Write health response failed", logfields.Error(err))
	}
}

// startMetricsServer serves /metrics and /health on addr. The listener is
// bound before returning so a busy port fails the watch command at startup.
func (r *Runner) startMetricsServer(addr string) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryWatch, "listen for metrics").
			WithContext("addr", addr).
			Build()
	}
	srv := &http.Server{
		Handler:           r.router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Addr(addr), logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", logfields.Addr(ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Metrics server shutdown failed", logfields.Error(err))
		}
	}, nil
}
