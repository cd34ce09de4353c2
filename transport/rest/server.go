package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/greenfelt/holdemsync/internal/eventlog"
	"github.com/greenfelt/holdemsync/internal/view"
)

// Server - the local status API. It serves the projection contract a renderer
// needs, nothing more: health, the latest published view, the bounded log.
type Server struct {
	logger *slog.Logger
	views  *view.Holder
	log    *eventlog.Log
}

func NewServer(logger *slog.Logger, views *view.Holder, log *eventlog.Log) *Server {
	return &Server{
		logger: logger.With("component", "status-api"),
		views:  views,
		log:    log,
	}
}

// Start - serves until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (that *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Get("/healthz", that.handleHealthz)
	router.Get("/state", that.handleState)
	router.Get("/log", that.handleLog)

	return router
}

func (that *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleState - 204 until the first view is published; never a 500 for a
// missing snapshot.
func (that *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	current, ok := that.views.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	that.writeJSON(w, current)
}

func (that *Server) handleLog(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.log.Entries())
}

func (that *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
