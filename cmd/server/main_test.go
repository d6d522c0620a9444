package main

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalacademy/platform/internal/config"
	"github.com/globalacademy/platform/internal/store"
	"github.com/globalacademy/platform/internal/translation"
)

type fakeCron struct {
	started bool
	stopped bool
}

func (f *fakeCron) Start() {
	f.started = true
}

func (f *fakeCron) Stop() context.Context {
	f.stopped = true
	return context.Background()
}

type fakeHTTP struct {
	listenCalled chan struct{}
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

func newFakeHTTP() *fakeHTTP {
	return &fakeHTTP{
		listenCalled: make(chan struct{}),
		shutdownCh:   make(chan struct{}),
	}
}

func (f *fakeHTTP) ListenAndServe(string) error {
	close(f.listenCalled)
	<-f.shutdownCh
	return http.ErrServerClosed
}

func (f *fakeHTTP) Shutdown(context.Context) error {
	f.shutdownOnce.Do(func() { close(f.shutdownCh) })
	return nil
}

func TestRunWithComponentsStartsAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{
		HTTP: config.HTTPConfig{Addr: "127.0.0.1:0"},
	}
	jobs := &fakeCron{}
	srv := newFakeHTTP()

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- runWithComponents(ctx, cfg, jobs, srv)
	}()

	select {
	case <-srv.listenCalled:
	case <-time.After(2 * time.Second):
		t.Fatal("http server did not start")
	}

	cancel()

	select {
	case err := <-doneCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runWithComponents did not exit after cancellation")
	}

	assert.True(t, jobs.started)
	assert.True(t, jobs.stopped)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	require.NoError(t, seedIfEmpty(ctx, st))
	courses, err := st.Courses(ctx)
	require.NoError(t, err)
	seeded := len(courses)
	require.NotZero(t, seeded)

	require.NoError(t, seedIfEmpty(ctx, st))
	courses, err = st.Courses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, seeded)
}

func TestScheduleJobsRejectsBadCron(t *testing.T) {
	cfg := &config.Config{
		Maint: config.MaintConfig{
			CacheSweepCron:  "not a cron expression",
			WeeklyResetCron: "0 0 * * 1",
		},
	}
	translator := translation.NewService(translation.NewCache(0, 0, 0), translation.NewStaticBackend())

	err := scheduleJobs(cron.New(), cfg, translator, store.NewMemStore())
	require.Error(t, err)
}

func TestScheduleJobsAcceptsDefaults(t *testing.T) {
	cfg := &config.Config{
		Maint: config.MaintConfig{
			CacheSweepCron:  "0 * * * *",
			WeeklyResetCron: "0 0 * * 1",
		},
	}
	translator := translation.NewService(translation.NewCache(0, 0, 0), translation.NewStaticBackend())

	err := scheduleJobs(cron.New(), cfg, translator, store.NewMemStore())
	require.NoError(t, err)
}

func TestOpenStoreMemory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}
	st, closeStore, err := openStore(cfg)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &store.MemStore{}, st)
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: t.TempDir() + "/platform.db",
	}}
	st, closeStore, err := openStore(cfg)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &store.SQLiteStore{}, st)
}
