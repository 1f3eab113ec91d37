package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/peterbourgon/ff/v4"
)

const (
	defaultPort  = 3000
	envVarPrefix = "RECEIPT_PROCESSOR"
)

type config struct {
	port          int
	dbPath        string
	enableMetrics bool
	showVersion   bool
}

// parseConfig reads flags, then RECEIPT_PROCESSOR_* environment variables.
// The port additionally falls back to a bare PORT variable.
func parseConfig(args []string) (config, *ff.FlagSet, error) {
	fs := ff.NewFlagSet("receipt-processor")
	var (
		port          = fs.IntLong("port", defaultPort, "HTTP server port (or set PORT env var)")
		dbPath        = fs.StringLong("db", "", "BoltDB file path (empty keeps scores in memory)")
		enableMetrics = fs.BoolLong("metrics", "Expose Prometheus metrics at /metrics")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix(envVarPrefix),
	); err != nil {
		return config{}, fs, err
	}

	cfg := config{
		port:          *port,
		dbPath:        *dbPath,
		enableMetrics: *enableMetrics,
		showVersion:   *showVersion,
	}

	if f, ok := fs.GetFlag("port"); ok && !f.IsSet() {
		if v := os.Getenv("PORT"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return config{}, fs, fmt.Errorf("PORT=%q: %w", v, err)
			}
			cfg.port = p
		}
	}

	return cfg, fs, nil
}
