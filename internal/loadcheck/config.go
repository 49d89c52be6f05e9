// Package loadcheck drives a running catalog service over HTTP and verifies
// its pagination and error contracts under concurrent writes.
package loadcheck

import (
	"time"

	"github.com/okian/httpkit/internal/adapters/repository"
)

// Config holds configuration for a load check run.
type Config struct {
	BaseURL  string        // Base URL of the service
	NumItems int           // Number of items to create
	PageSize uint64        // Page size used when walking GET /items
	Workers  int           // Number of concurrent workers
	Rate     float64       // Max item submissions per second; 0 means unlimited
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// Item is the wire shape of a catalog item.
type Item = repository.Item

// Stats holds run statistics.
type Stats struct {
	ItemsSubmitted int
	ItemsCreated   int
	ItemsConflict  int
	ItemsFailed    int
	PagesRead      int
	ItemsListed    int
	ContractChecks int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
