package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zombor/receipt-processor/internal/metrics"
	"github.com/zombor/receipt-processor/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	cfg, fs, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if cfg.showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	db, err := openDB(cfg.dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		m              *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.enableMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		metricsHandler = m.Handler()
		slog.Info("Metrics enabled", "path", "/metrics")
	}

	receiptService := receipt.NewService(db, m)
	server := receipt.NewServer(receiptService, metricsHandler)

	addr := fmt.Sprintf(":%d", cfg.port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Receipt processor listening", "port", cfg.port, "version", version)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// openDB returns a BoltDB when a path is configured and an in-memory store otherwise
func openDB(path string) (receipt.DB, error) {
	if path == "" {
		slog.Info("Using in-memory score storage")
		return receipt.NewMemoryDB(), nil
	}
	slog.Info("Initializing database...", "path", path)
	return receipt.NewBoltDB(path)
}
