package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thanhvudev/furnimart/pkg/queue"
)

type confirmJob struct {
	OrderID uint
	called  *atomic.Int32
}

func (j *confirmJob) Handle() error {
	if j.called != nil {
		j.called.Add(1)
	}
	return nil
}

type flakyJob struct {
	attempts *atomic.Int32
}

func (j *flakyJob) Handle() error {
	if j.attempts != nil {
		j.attempts.Add(1)
	}
	return errors.New("always fails")
}

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.confirmJob", func() queue.Job { return &confirmJob{called: &atomic.Int32{}} })
	queue.Register("*queue_test.flakyJob", func() queue.Job { return &flakyJob{attempts: &atomic.Int32{}} })
}

func TestDispatchAndProcess(t *testing.T) {
	if err := queue.Dispatch(&confirmJob{OrderID: 1, called: &atomic.Int32{}}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
}

func TestFailedJobLogged(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch(&flakyJob{attempts: &atomic.Int32{}}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	// One attempt plus its one-second backoff, with some slack.
	time.Sleep(2500 * time.Millisecond)

	if len(queue.FailedJobs()) == 0 {
		t.Error("expected at least one failed job")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&confirmJob{OrderID: 2, called: &atomic.Int32{}}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
