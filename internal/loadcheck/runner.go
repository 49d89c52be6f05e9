package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/httpkit/pkg/logger"
)

// Run executes a complete load check.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := validate(config); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(config.BaseURL, config.Timeout)

	logger.Get().Info(ctx, "starting load check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("items", config.NumItems),
		logger.Int("workers", config.Workers),
		logger.Float64("rate", config.Rate),
		logger.Uint64("pageSize", config.PageSize),
		logger.Duration("timeout", config.Timeout))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create items concurrently
	names := itemNames(uuid.NewString()[:8], config.NumItems)
	ids, err := submitItems(ctx, config, client, names, stats)
	if err != nil {
		return stats, fmt.Errorf("item submission failed: %w", err)
	}
	if stats.ItemsFailed > 0 {
		return stats, fmt.Errorf("%d item submissions failed", stats.ItemsFailed)
	}

	// Step 3: Walk every page and check its metadata
	listed, err := walkPages(ctx, config, client, stats)
	if err != nil {
		return stats, fmt.Errorf("pagination check failed: %w", err)
	}
	if err := verifyCreated(ids, listed); err != nil {
		return stats, fmt.Errorf("pagination check failed: %w", err)
	}

	// Step 4: Check error responses
	if len(names) > 0 {
		if err := verifyErrorContract(ctx, client, names[0], stats); err != nil {
			return stats, fmt.Errorf("error contract check failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "load check completed successfully")
	return stats, nil
}

func validate(config *Config) error {
	switch {
	case config == nil:
		return errors.New("nil config")
	case config.BaseURL == "":
		return errors.New("base URL must not be empty")
	case config.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", config.Workers)
	case config.PageSize == 0:
		return errors.New("page size must be positive")
	case config.NumItems < 0:
		return fmt.Errorf("items must not be negative, got %d", config.NumItems)
	case config.Rate < 0:
		return fmt.Errorf("rate must not be negative, got %g", config.Rate)
	}
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := client.getJSON(ctx, "/healthz", &body); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("service reports status %q", body.Status)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, itemsPerSecond float64
	if stats.ItemsSubmitted > 0 {
		successRate = float64(stats.ItemsCreated+stats.ItemsConflict) / float64(stats.ItemsSubmitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		itemsPerSecond = float64(stats.ItemsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("itemsSubmitted", stats.ItemsSubmitted),
		logger.Int("itemsCreated", stats.ItemsCreated),
		logger.Int("itemsConflict", stats.ItemsConflict),
		logger.Int("itemsFailed", stats.ItemsFailed),
		logger.Int("pagesRead", stats.PagesRead),
		logger.Int("itemsListed", stats.ItemsListed),
		logger.Int("contractChecks", stats.ContractChecks),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("itemsPerSecond", itemsPerSecond))
}
