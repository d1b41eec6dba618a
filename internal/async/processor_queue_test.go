package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessorQueue(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("every enqueued job reaches the handler", func(t *testing.T) {
		var mu sync.Mutex
		seen := map[string]int{}
		q := NewProcessorQueue(func(_ context.Context, job Job) error {
			mu.Lock()
			defer mu.Unlock()
			seen[job.Path]++
			return nil
		}, logger, WithWorkers(2))

		paths := []string{"/in/a.pdf", "/in/b.pdf", "/in/c.json"}
		for _, p := range paths {
			require.NoError(t, q.Enqueue(context.Background(), Job{Path: p, SubmittedAt: time.Now()}))
		}
		q.Shutdown(context.Background())

		mu.Lock()
		defer mu.Unlock()
		assert.Len(t, seen, len(paths))
		for _, p := range paths {
			assert.Equal(t, 1, seen[p], p)
		}
	})

	t.Run("a failing job does not stop the workers", func(t *testing.T) {
		var mu sync.Mutex
		var processed []string
		q := NewProcessorQueue(func(_ context.Context, job Job) error {
			mu.Lock()
			defer mu.Unlock()
			processed = append(processed, job.Path)
			if job.Path == "/in/bad.pdf" {
				return errors.New("parse failed")
			}
			return nil
		}, logger, WithWorkers(1))

		require.NoError(t, q.Enqueue(context.Background(), Job{Path: "/in/bad.pdf"}))
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: "/in/good.pdf"}))
		q.Shutdown(context.Background())

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"/in/bad.pdf", "/in/good.pdf"}, processed)
	})

	t.Run("enqueue after shutdown is a no-op", func(t *testing.T) {
		q := NewProcessorQueue(func(_ context.Context, _ Job) error {
			t.Error("handler must not run")
			return nil
		}, logger)
		q.Shutdown(context.Background())

		assert.NoError(t, q.Enqueue(context.Background(), Job{Path: "/in/late.pdf"}))
	})

	t.Run("handler context carries the process timeout", func(t *testing.T) {
		deadlineSeen := make(chan bool, 1)
		q := NewProcessorQueue(func(ctx context.Context, _ Job) error {
			_, ok := ctx.Deadline()
			deadlineSeen <- ok
			return nil
		}, logger, WithProcessTimeout(time.Second))

		require.NoError(t, q.Enqueue(context.Background(), Job{Path: "/in/a.pdf"}))
		assert.True(t, <-deadlineSeen)
		q.Shutdown(context.Background())
	})
}
