// Package jobs runs background processors on a polling cadence.
package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// JobProcessor is the unit of work a Worker drives. ProcessJobs should
// claim and handle whatever is currently pending, then return.
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Worker invokes a JobProcessor once per poll interval until stopped.
type Worker struct {
	processor JobProcessor
	interval  time.Duration

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWorker returns a worker that polls at the given interval.
func NewWorker(processor JobProcessor, pollInterval time.Duration) *Worker {
	return &Worker{
		processor: processor,
		interval:  pollInterval,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs the polling loop. It blocks until the context is cancelled
// or Stop is called, so callers usually run it in its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	defer close(w.done)

	log.Printf("job worker polling every %v", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)
		case <-ctx.Done():
			log.Println("job worker exiting: context cancelled")
			return
		case <-w.quit:
			log.Println("job worker exiting: stop requested")
			return
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	if err := w.processor.ProcessJobs(ctx); err != nil {
		log.Printf("job worker pass failed: %v", err)
	}
}

// Stop signals the loop to exit and waits for it to finish. Safe to call
// more than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
	<-w.done
}
