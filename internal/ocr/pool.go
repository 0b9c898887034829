package ocr

import (
	"context"
	"image"
	"log"
	"runtime"
	"sync"
	"time"
)

// PoolConfig bounds the concurrent OCR calls for one page.
type PoolConfig struct {
	// Workers is the number of concurrent readers; zero or negative means
	// one per available CPU. OCR is the expensive step of the pipeline and
	// each call is a pure function of its own crop, so parallelism is safe.
	Workers int

	// Timeout is the hard per-call budget. A read that misses it yields an
	// empty label, not an error.
	Timeout time.Duration
}

// ReadAll recognizes the labels for a page's label crops concurrently and
// returns them in the original index order, one result per input image.
//
// Failed or timed-out reads come back as empty strings: a missing label is
// a normal value to the deduplication engine, never a reason to drop the
// cell. The only fatal condition is cancellation of ctx itself, which stops
// scheduling and returns ctx.Err.
func ReadAll(ctx context.Context, reader Reader, crops []image.Image, cfg PoolConfig) ([]string, error) {
	labels := make([]string, len(crops))
	if len(crops) == 0 {
		return labels, ctx.Err()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(crops) {
		workers = len(crops)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				labels[i] = readOne(ctx, reader, crops[i], cfg.Timeout)
			}
		}()
	}

scheduling:
	for i := range crops {
		select {
		case <-ctx.Done():
			break scheduling
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return labels, ctx.Err()
}

func readOne(ctx context.Context, reader Reader, crop image.Image, timeout time.Duration) string {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	label, err := reader.ReadLabel(ctx, crop)
	if err != nil {
		log.Printf("ocr: label read failed: %v", err)
		return ""
	}
	return label
}
