package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

const maxTasks = 32

// Background runs best-effort tasks detached from the request that spawned
// them. Task failures are logged, never propagated to the caller.
type Background struct {
	log logrus.FieldLogger
	wg  sync.WaitGroup
	sem chan struct{}
}

func New(log logrus.FieldLogger) *Background {
	return &Background{
		log: log,
		sem: make(chan struct{}, maxTasks),
	}
}

// Go schedules fn on its own goroutine. Panics are recovered and reported
// through the same failure channel as plain errors.
func (b *Background) Go(name string, fn func() error) {
	b.wg.Add(1)
	b.sem <- struct{}{}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				b.log.WithFields(logrus.Fields{
					"task":  name,
					"trace": string(debug.Stack()),
				}).Errorf("background task panicked: %v", rec)
			}
			<-b.sem
			b.wg.Done()
		}()

		if err := fn(); err != nil {
			b.log.WithField("task", name).Errorf("background task failed: %v", err)
		}
	}()
}

// Shutdown waits for in-flight tasks to drain or the context to expire.
func (b *Background) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutting down background tasks: %w", ctx.Err())
	}
}
