package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - builds the HTTP routes of the game API.
func NewRouter(logger *slog.Logger, players playerService, games gamePlayService) http.Handler {
	handler := NewGameHandler(logger, players, games)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", handler.Ping)
	router.Post("/players", handler.CreatePlayer)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", handler.CreateGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetGame)
			r.Delete("/", handler.DeleteGame)
			r.Post("/join", handler.JoinGame)
			r.Post("/turns", handler.MakeTurn)
			r.Get("/hint", handler.Hint)
		})
	})

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
