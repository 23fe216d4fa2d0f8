package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeService blocks in Start until Shutdown, or fails immediately when startErr is set.
type fakeService struct {
	startErr    error
	shutdownErr error
	stopped     chan struct{}
	shutdowns   atomic.Int32
}

func newFakeService() *fakeService {
	return &fakeService{stopped: make(chan struct{})}
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeService) Shutdown(ctx context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stopped)
	}
	return f.shutdownErr
}

func TestServe(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	logger := discardLogger()

	t.Run("signal-shuts-down-all", func(t *testing.T) {
		api, metricsSvc := newFakeService(), newFakeService()
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- serve(ctx, logger, time.Second, map[string]service{"api": api, "metrics": metricsSvc})
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancellation")
		}
		assert.Equal(t, int32(1), api.shutdowns.Load())
		assert.Equal(t, int32(1), metricsSvc.shutdowns.Load())
	})

	t.Run("start-failure-stops-others", func(t *testing.T) {
		api := newFakeService()
		metricsSvc := newFakeService()
		metricsSvc.startErr = errors.New("address already in use")

		err := serve(context.Background(), logger, time.Second, map[string]service{"api": api, "metrics": metricsSvc})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics server error: address already in use")
		assert.Equal(t, int32(1), api.shutdowns.Load())
	})

	t.Run("shutdown-errors-are-joined", func(t *testing.T) {
		api := newFakeService()
		api.shutdownErr = errors.New("drain timeout")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := serve(ctx, logger, time.Second, map[string]service{"api": api})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api server shutdown: drain timeout")
	})
}
