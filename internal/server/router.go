package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rileyhilliard/statusboard/internal/display"
	"github.com/rileyhilliard/statusboard/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// NewRouter returns the HTTP handler serving state.
func NewRouter(state *State) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/board", boardJSON(state))
	r.Get("/board.txt", boardText(state))
	return r
}

func boardJSON(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		frame, ok := state.Load()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "not_ready", "no poll has completed yet")
			return
		}
		writeJSON(w, http.StatusOK, NewBoardResponse(frame, state.Atlas()))
	}
}

func boardText(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		frame, ok := state.Load()
		if !ok {
			http.Error(w, "no poll has completed yet", http.StatusServiceUnavailable)
			return
		}
		var buf bytes.Buffer
		if err := display.WritePlain(&buf, frame, state.Atlas()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// ListenAndServe serves handler on addr until ctx is done, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving board on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
