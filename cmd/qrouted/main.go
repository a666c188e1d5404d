// Command qrouted runs the scheduling HTTP service: loads config from
// a "qroute" config file in the working directory, if present (and
// QROUTE_* environment variables), and serves
// /health and /api/schedule* until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/qroute/internal/app"
	"github.com/kegliz/qroute/internal/config"
)

func main() {
	cfg, err := config.Load(config.Options{Path: "."})
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrouted: failed to load config: %v\n", err)
		os.Exit(1)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: "dev"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrouted: failed to build server: %v\n", err)
		os.Exit(1)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(cfg.GetInt("port"), false)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "qrouted: server stopped: %v\n", err)
			os.Exit(1)
		}
	case <-sigc:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "qrouted: shutdown error: %v\n", err)
			os.Exit(1)
		}
	}
}
