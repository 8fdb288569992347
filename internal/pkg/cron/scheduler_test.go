package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("transient")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	// A failing job does not block the others.
	assert.Equal(t, int32(1), second.Load())
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	// First execution happens on start, before the first interval elapses.
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestPanickingJobIsContained(t *testing.T) {
	s := NewScheduler()

	var ticks atomic.Int32
	s.AddJob("explode", time.Hour, func(ctx context.Context) error {
		ticks.Add(1)
		panic("boom")
	})

	s.Start()
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, 10*time.Millisecond)

	// Stop only returns if the job goroutine survived the panic.
	s.Stop()
}
