// Command tohnew starts the Tower of Hanoi tournament server.
//
// It exposes the REST API, the websocket endpoint for players and
// administrators, and persists matches to a SQLite database. Flags
// control host/port, the database path, debug logging, and version
// output.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/dinesh-mca12/tohnew/api"
	"github.com/dinesh-mca12/tohnew/game/service"
	"github.com/dinesh-mca12/tohnew/game/session"
	"github.com/dinesh-mca12/tohnew/game/store"
	"github.com/dinesh-mca12/tohnew/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Tower of Hanoi Tournament Server"
)

// Configuration flags control how the server starts.
var (
	port    = flag.Int("port", 8080, "HTTP server port")
	host    = flag.String("host", "0.0.0.0", "HTTP server host")
	dbPath  = flag.String("db", getDBPathDefault(), "SQLite database path")
	debug   = flag.Bool("debug", false, "Enable debug logging")
	version = flag.Bool("version", false, "Show version information")
)

// Idle sessions with no live connections are pruned on this cadence.
const (
	reapInterval  = 10 * time.Minute
	sessionMaxAge = 2 * time.Hour
)

// getDBPathDefault honors the DB_PATH environment variable, then falls
// back to "data/hanoi.db".
func getDBPathDefault() string {
	if p := os.Getenv("DB_PATH"); p != "" {
		return p
	}
	return "data/hanoi.db"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                      # Run on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090           # Run on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db /tmp/hanoi.db    # Use a different database file\n", os.Args[0])
	}
}

// main parses flags, wires the services, and runs the HTTP server until
// a shutdown signal arrives.
func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hanoi",
	})

	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to load .env file", "err", err)
		}
	} else {
		logger.Info("loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(true)
	}

	logger.Info("starting", "app", AppName, "version", Version)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Fatal("failed to open database", "path", *dbPath, "err", err)
	}
	defer st.Close()
	logger.Info("database ready", "path", *dbPath)

	registry := session.NewRegistry()
	hub := websocket.NewHub(logger)
	matchService := service.NewMatchService(st, registry, hub, logger)
	apiServer := api.NewServer(matchService, hub, logger)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sessionReaper(ctx, registry, logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		logger.Info("endpoints", "rest", fmt.Sprintf("http://%s/api", addr), "ws", fmt.Sprintf("ws://%s/ws", addr))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "err", err)
		}
	}()

	sig := <-stop
	logger.Info("shutting down", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

// sessionReaper periodically drops runtime sessions that have had no
// activity and no live connections for the retention window. The durable
// match records are untouched.
func sessionReaper(ctx context.Context, registry *session.Registry, logger *log.Logger) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.ReapIdle(sessionMaxAge); removed > 0 {
				logger.Info("reaped idle sessions", "count", removed)
			}
		}
	}
}
