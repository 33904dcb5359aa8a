package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shreyansh0727/datasync/internal/config"
	"github.com/shreyansh0727/datasync/internal/logging"
	"github.com/shreyansh0727/datasync/internal/relay"
)

const shutdownTimeout = 10 * time.Second

func main() {
	addr := flag.String("addr", "", "listen address (default :8080)")
	staticDir := flag.String("static", "", "directory of web UI assets to serve at /")
	flag.Parse()

	logging.Init(slog.LevelInfo)

	cfg := config.LoadServer(*addr, *staticDir)
	srv := relay.NewServer(relay.ServerConfig{
		Addr:      cfg.Addr,
		StaticDir: cfg.StaticDir,
	}, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-stop:
		slog.Info("shutdown signal received")
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			os.Exit(1)
		}
	}
}
