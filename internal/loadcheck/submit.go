package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/httpkit/pkg/logger"
	"golang.org/x/time/rate"
)

type createRequest struct {
	Name string `json:"name"`
}

// itemNames builds the names to submit. Every tenth name repeats the previous
// one so the run exercises the conflict path.
func itemNames(runID string, n int) []string {
	names := make([]string, n)
	for i := range names {
		if i > 0 && i%10 == 0 {
			names[i] = names[i-1]
			continue
		}
		names[i] = fmt.Sprintf("load-%s-%05d", runID, i)
	}
	return names
}

// submitItems creates items concurrently and returns the IDs of those created.
func submitItems(ctx context.Context, config *Config, client *HTTPClient, names []string, stats *Stats) ([]string, error) {
	log := logger.Get()
	log.Info(ctx, "submitting items", logger.Int("items", len(names)), logger.Int("workers", config.Workers))

	var (
		submitted int64
		created   int64
		conflict  int64
		failed    int64
		mu        sync.Mutex
		ids       = make([]string, 0, len(names))
	)

	limiter := newLimiter(config.Rate)
	nameChan := make(chan string, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range nameChan {
				if err := limiter.Wait(ctx); err != nil {
					atomic.AddInt64(&submitted, 1)
					atomic.AddInt64(&failed, 1)
					continue
				}
				id, result := submitSingleItem(ctx, client, name)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case resultCreated:
					atomic.AddInt64(&created, 1)
					mu.Lock()
					ids = append(ids, id)
					mu.Unlock()
				case resultConflict:
					atomic.AddInt64(&conflict, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if config.Verbose {
					log.Debug(ctx, "item submitted", logger.String("name", name), logger.String("result", result))
				}
			}
		}()
	}

	go func() {
		defer close(nameChan)
		for _, name := range names {
			select {
			case <-ctx.Done():
				return
			case nameChan <- name:
			}
		}
	}()

	wg.Wait()

	stats.ItemsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ItemsCreated = int(atomic.LoadInt64(&created))
	stats.ItemsConflict = int(atomic.LoadInt64(&conflict))
	stats.ItemsFailed = int(atomic.LoadInt64(&failed))

	log.Info(ctx, "item submission completed",
		logger.Int("created", stats.ItemsCreated),
		logger.Int("conflict", stats.ItemsConflict),
		logger.Int("failed", stats.ItemsFailed))

	if err := ctx.Err(); err != nil {
		return ids, err
	}
	return ids, nil
}

// newLimiter paces submissions across all workers. A non-positive rate
// disables pacing.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func submitSingleItem(ctx context.Context, client *HTTPClient, name string) (string, string) {
	var it Item
	err := client.postJSON(ctx, "/items", createRequest{Name: name}, &it)
	if err == nil {
		return it.ID, resultCreated
	}
	var rerr *ResponseError
	if errors.As(err, &rerr) && rerr.Status == http.StatusConflict {
		return "", resultConflict
	}
	return "", resultFailed
}
