package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"motes-generator.backend/internal/domain/entities"
)

type matchExpirerStub struct {
	mu    sync.Mutex
	calls int
	res   *entities.ExpiryResult
	err   error
}

func (s *matchExpirerStub) ExpireMatches(_ context.Context) (*entities.ExpiryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *matchExpirerStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestNewMatchExpiryJob_DefaultInterval(t *testing.T) {
	job := NewMatchExpiryJob(&matchExpirerStub{}, 0)
	require.Equal(t, DefaultExpiryInterval, job.interval)

	job = NewMatchExpiryJob(&matchExpirerStub{}, time.Minute)
	require.Equal(t, time.Minute, job.interval)
}

func TestProcessExpiredMatches(t *testing.T) {
	stub := &matchExpirerStub{res: &entities.ExpiryResult{ExpiredCount: 2, ExpiredMatchIDs: []int64{1, 2}}}
	job := NewMatchExpiryJob(stub, time.Millisecond)

	job.processExpiredMatches(context.Background())
	require.Equal(t, 1, stub.callCount())

	stub.res = &entities.ExpiryResult{ExpiredMatchIDs: []int64{}}
	job.processExpiredMatches(context.Background())
	require.Equal(t, 2, stub.callCount())
}

func TestProcessExpiredMatches_ErrorIsSwallowed(t *testing.T) {
	stub := &matchExpirerStub{err: errors.New("db down")}
	job := NewMatchExpiryJob(stub, time.Millisecond)

	require.NotPanics(t, func() { job.processExpiredMatches(context.Background()) })
	require.Equal(t, 1, stub.callCount())
}

func TestStartStop_StopsByContext(t *testing.T) {
	stub := &matchExpirerStub{res: &entities.ExpiryResult{ExpiredMatchIDs: []int64{}}}
	job := NewMatchExpiryJob(stub, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return stub.callCount() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewMatchExpiryJob(&matchExpirerStub{res: &entities.ExpiryResult{}}, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	job.Stop()
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after Stop")
	}
}
