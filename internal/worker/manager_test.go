package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loopWorker крутится до Stop или отмены контекста
type loopWorker struct {
	*BaseWorker
	started atomic.Bool
}

func newLoopWorker() *loopWorker {
	return &loopWorker{BaseWorker: NewBaseWorker("loop", "group", zap.NewNop())}
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	for w.Pause(ctx, 10*time.Millisecond) {
	}
	return ctx.Err()
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := NewWorkerManager(0, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	w := newLoopWorker()
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, w.started.Load, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())
}

func TestWorkerManager_StopTimesOut(t *testing.T) {
	m := NewWorkerManager(50*time.Millisecond, zap.NewNop())
	w := &stuckWorker{
		BaseWorker: NewBaseWorker("stuck", "group", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(w.release)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
}

func TestBaseWorker_Pause(t *testing.T) {
	t.Run("elapsed", func(t *testing.T) {
		w := NewBaseWorker("w", "g", zap.NewNop())
		assert.True(t, w.Pause(context.Background(), time.Millisecond))
	})

	t.Run("stopped", func(t *testing.T) {
		w := NewBaseWorker("w", "g", zap.NewNop())
		require.NoError(t, w.Stop())
		require.NoError(t, w.Stop())
		assert.False(t, w.Pause(context.Background(), time.Minute))
	})

	t.Run("cancelled", func(t *testing.T) {
		w := NewBaseWorker("w", "g", zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, w.Pause(ctx, time.Minute))
	})

	t.Run("consumer name", func(t *testing.T) {
		w := NewBaseWorker("w", "g", zap.NewNop())
		assert.NotEmpty(t, w.ConsumerName())
		assert.Equal(t, "g", w.ConsumerGroup())
	})
}
