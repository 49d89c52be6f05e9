package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/httpkit/internal/loadcheck"
)

// Default configuration constants.
const (
	defaultNumItems    = 1000
	defaultPageSize    = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numItems = flag.Int("items", defaultNumItems, "Number of items to create")
		pageSize = flag.Uint64("page", defaultPageSize, "Page size used when listing")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		perSec   = flag.Float64("rate", 0, "Max item submissions per second, 0 for unlimited")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Also write JSON logs to this file")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadcheck.ShowHelp()
		return
	}

	closer, err := loadcheck.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	config := &loadcheck.Config{
		BaseURL:  *baseURL,
		NumItems: *numItems,
		PageSize: *pageSize,
		Workers:  *workers,
		Rate:     *perSec,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if _, err := loadcheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load check failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
