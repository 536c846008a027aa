package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrunoTulio/safesync/internal/config"
	apphttp "github.com/BrunoTulio/safesync/internal/http"
	"github.com/BrunoTulio/safesync/internal/version"
	"github.com/spf13/cobra"
)

const (
	readTimeout     = 10 * time.Second
	idleTimeout     = 1 * time.Second
	writeTimeout    = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	serveAddr  string
	serveWatch bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only HTTP API",
	Long: `Start a small HTTP API over the scripts directory and the scheduled tasks.

Endpoints:
  GET  /health
  GET  /scripts
  GET  /scripts/{name}
  GET  /tasks
  POST /secrets/reload

Requests are handled one at a time. With --watch the secrets file is
reloaded whenever it changes on disk.

Examples:
  safesync serve
  safesync serve --addr :9090 --watch`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr from the config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the secrets file when it changes")
}

func runServe(cmd *cobra.Command, args []string) {
	log.Infof("🚀 Starting %s", version.Get())

	svc, cfg, secrets := buildService()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		go func() {
			if err := config.WatchSecrets(ctx, secrets, log); err != nil {
				log.Errorf("Secrets watcher stopped: %v", err)
			}
		}()
	}

	s := http.Server{
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
		WriteTimeout: writeTimeout,
		Addr:         addr,
		Handler:      apphttp.New(svc, log),
	}

	go func() {
		log.Infof("🌐 HTTP server on %s", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP failed: %v", err)
		}
	}()

	log.Info("safesync is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown failed: %v", err)
	}
	log.Info("✅ Shutdown complete")
}
