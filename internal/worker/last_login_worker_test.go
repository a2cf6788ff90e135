package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-portal/internal/events"
)

type recorderStub struct {
	mu    sync.Mutex
	names []string
	err   error
	block bool
}

func (r *recorderStub) RecordLastLogin(ctx context.Context, username string) error {
	if r.block {
		<-ctx.Done()
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, username)
	return r.err
}

func TestLastLoginWorkerRecordsSuccessfulLogins(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	rec := &recorderStub{}
	StartLastLoginWorker(d, rec, time.Second, nil)

	require.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventLoginSucceeded, "alice", "sid", nil)))
	require.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, "mallory", "sid", nil)))

	assert.Equal(t, []string{"alice"}, rec.names)
}

func TestLastLoginWorkerSwallowsFailure(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	rec := &recorderStub{err: errors.New("boom")}
	StartLastLoginWorker(d, rec, time.Second, nil)

	assert.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventLoginSucceeded, "alice", "sid", nil)))
	assert.Len(t, rec.names, 1)
}

func TestLastLoginWorkerBoundedByTimeout(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	rec := &recorderStub{block: true}
	StartLastLoginWorker(d, rec, 50*time.Millisecond, nil)

	start := time.Now()
	assert.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventLoginSucceeded, "alice", "sid", nil)))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestLastLoginWorkerIgnoresCancelledRequest(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	rec := &recorderStub{}
	StartLastLoginWorker(d, rec, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Publish(ctx, events.NewEvent(events.EventLoginSucceeded, "alice", "sid", nil)))
	assert.Equal(t, []string{"alice"}, rec.names)
}
