package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"urlmonitor/internals/modules/monitor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDue(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		url  monitor.MonitoredURL
		want bool
	}{
		{
			name: "never checked is always due",
			url:  monitor.MonitoredURL{CheckInterval: 60},
			want: true,
		},
		{
			name: "interval elapsed",
			url: monitor.MonitoredURL{
				CheckInterval: 60,
				Snapshot:      monitor.Snapshot{LastCheck: timePtr(now.Add(-61 * time.Second))},
			},
			want: true,
		},
		{
			name: "interval exactly elapsed",
			url: monitor.MonitoredURL{
				CheckInterval: 60,
				Snapshot:      monitor.Snapshot{LastCheck: timePtr(now.Add(-60 * time.Second))},
			},
			want: true,
		},
		{
			name: "interval not yet elapsed",
			url: monitor.MonitoredURL{
				CheckInterval: 60,
				Snapshot:      monitor.Snapshot{LastCheck: timePtr(now.Add(-59 * time.Second))},
			},
			want: false,
		},
		{
			name: "zero interval falls back to default",
			url: monitor.MonitoredURL{
				Snapshot: monitor.Snapshot{LastCheck: timePtr(now.Add(-time.Duration(monitor.DefaultCheckInterval-1) * time.Second))},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, due(tt.url, now))
		})
	}
}

type fakeStore struct {
	urls []monitor.MonitoredURL
	err  error
}

func (s *fakeStore) ListActive(context.Context) ([]monitor.MonitoredURL, error) {
	return s.urls, s.err
}

type fakeRunner struct {
	mu      sync.Mutex
	checked []uuid.UUID
	fail    map[uuid.UUID]bool
}

func (r *fakeRunner) CheckNow(_ context.Context, urlID uuid.UUID) (monitor.URLCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checked = append(r.checked, urlID)
	if r.fail[urlID] {
		return monitor.URLCheck{}, errors.New("check failed")
	}
	return monitor.URLCheck{MonitoredURLID: urlID}, nil
}

func TestSweepChecksOnlyDueURLs(t *testing.T) {
	now := time.Now().UTC()
	dueURL := monitor.MonitoredURL{ID: uuid.New(), CheckInterval: 60, IsActive: true}
	freshURL := monitor.MonitoredURL{
		ID:            uuid.New(),
		CheckInterval: 60,
		IsActive:      true,
		Snapshot:      monitor.Snapshot{LastCheck: timePtr(now.Add(-5 * time.Second))},
	}

	store := &fakeStore{urls: []monitor.MonitoredURL{dueURL, freshURL}}
	runner := &fakeRunner{}
	logger := zerolog.Nop()

	s := NewScheduler(store, runner, time.Second, 4, &logger)
	s.sweep(context.Background())

	require.Len(t, runner.checked, 1)
	assert.Equal(t, dueURL.ID, runner.checked[0])
}

func TestSweepContinuesPastFailures(t *testing.T) {
	failing := monitor.MonitoredURL{ID: uuid.New(), CheckInterval: 60, IsActive: true}
	healthy := monitor.MonitoredURL{ID: uuid.New(), CheckInterval: 60, IsActive: true}

	store := &fakeStore{urls: []monitor.MonitoredURL{failing, healthy}}
	runner := &fakeRunner{fail: map[uuid.UUID]bool{failing.ID: true}}
	logger := zerolog.Nop()

	s := NewScheduler(store, runner, time.Second, 1, &logger)
	s.sweep(context.Background())

	assert.Len(t, runner.checked, 2)
}

func TestSweepToleratesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	runner := &fakeRunner{}
	logger := zerolog.Nop()

	s := NewScheduler(store, runner, time.Second, 1, &logger)
	s.sweep(context.Background())

	assert.Empty(t, runner.checked)
}
