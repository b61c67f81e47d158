package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mchmarny/focusforge/pkg/data"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen",
		Value:    serverPortDefault,
		Required: false,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP server exposing a read-only JSON API",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			debugFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	applyFlags(c)
	cfg := getConfig(c)
	repo, err := cfg.repository(c.Context)
	if err != nil {
		return err
	}

	port := c.Int(portFlag.Name)
	address := fmt.Sprintf("127.0.0.1:%d", port)

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(repo, cfg.now),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	slog.Info("server started", "address", fmt.Sprintf("http://%s/api/dashboard", address))

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(repo *data.Repository, now func() time.Time) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dashboard", dashboardAPIHandler(repo, now))

	mux.HandleFunc("GET /api/gpa", gpaAPIHandler(repo))
	mux.HandleFunc("POST /api/gpa/calculate", gpaCalculateAPIHandler())

	mux.HandleFunc("GET /api/decks", decksAPIHandler(repo, now))
	mux.HandleFunc("GET /api/decks/{id}", deckAPIHandler(repo))

	mux.HandleFunc("GET /api/notes", notesAPIHandler(repo))

	return mux
}
