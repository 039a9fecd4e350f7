package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestShutdownDrainsTasks(t *testing.T) {
	log := logrus.New()
	bg := New(log)

	var done int32
	for i := 0; i < 10; i++ {
		bg.Go("work", func() error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&done, 1)
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := bg.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if got := atomic.LoadInt32(&done); got != 10 {
		t.Fatalf("expected 10 tasks done, got %d", got)
	}
}

func TestShutdownTimeout(t *testing.T) {
	log := logrus.New()
	bg := New(log)

	bg.Go("slow", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := bg.Shutdown(ctx); err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestTaskFailureIsContained(t *testing.T) {
	log := logrus.New()
	bg := New(log)

	bg.Go("failing", func() error {
		return errors.New("boom")
	})
	bg.Go("panicking", func() error {
		panic("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// drains cleanly even when tasks fail or panic
	if err := bg.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
