package loadcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/httpkit/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging initializes the global logger. When logFile is set, output is
// also appended to that file as JSON lines.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
		format           = logger.FormatText
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closer = file
		format = logger.FormatJSON
	}
	if err := logger.InitWithWriter(w, format); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

// ShowHelp prints usage information for the load check tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`httpkit load check
==================

Creates items concurrently against a running catalog service, then walks every
page of GET /items verifying has_more, limit clamping and offsets, and checks
the JSON error contract for 400, 404, 409 and 422 responses.

Usage:
  loadcheck [options]

Options:
  -url string         Base URL of the service (default "http://localhost:9080")
  -items int          Number of items to create (default 1000)
  -page uint          Page size used when listing (default 50)
  -workers int        Number of concurrent workers (default CPU cores * 2)
  -rate float         Max item submissions per second, 0 for unlimited (default 0)
  -timeout duration   HTTP request timeout (default 30s)
  -log string         Also write JSON logs to this file
  -verbose            Enable debug logging
  -help               Show this help message
`)
}
