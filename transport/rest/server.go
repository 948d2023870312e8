package rest

import (
	"fmt"
	"net/http"
	"time"
)

// Start - starts the HTTP API server.
func Start(port string, handlers Handlers) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.Ping)
	mux.HandleFunc("POST /auth/token", handlers.IssueToken)
	mux.HandleFunc("GET /archive", handlers.WithAuth(handlers.ListArchive))
	mux.HandleFunc("GET /archive/{id}", handlers.WithAuth(handlers.GetArchivedGame))
	mux.HandleFunc("GET /games/{id}/board.svg", handlers.RenderBoard)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
