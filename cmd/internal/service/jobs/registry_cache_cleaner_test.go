package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelrp/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacheRepo struct {
	mu      sync.Mutex
	cutoffs []int64
	err     error
}

func (f *fakeCacheRepo) DeleteExpired(before int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return f.err
}

func (f *fakeCacheRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestSweepUsesTTLCutoff(t *testing.T) {
	repo := &fakeCacheRepo{}
	cleaner := NewRegistryCacheCleaner(repo, 2*time.Hour, time.Minute)

	before := utils.NowUTC()
	cleaner.Sweep()
	after := utils.NowUTC()

	require.Len(t, repo.cutoffs, 1)
	ttl := (2 * time.Hour).Milliseconds()
	assert.GreaterOrEqual(t, repo.cutoffs[0], before-ttl)
	assert.LessOrEqual(t, repo.cutoffs[0], after-ttl)
}

func TestSweepToleratesRepositoryErrors(t *testing.T) {
	repo := &fakeCacheRepo{err: errors.New("disk full")}
	cleaner := NewRegistryCacheCleaner(repo, 0, 0)

	assert.NotPanics(t, cleaner.Sweep)
	assert.Equal(t, DefaultCacheTTL, cleaner.ttl)
	assert.Equal(t, DefaultCleanInterval, cleaner.interval)
}

func TestStartStopsOnCancel(t *testing.T) {
	repo := &fakeCacheRepo{}
	cleaner := NewRegistryCacheCleaner(repo, time.Hour, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleaner.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.calls() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop after cancel")
	}
}
