package check

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"urlmonitor/internals/modules/monitor"
	"urlmonitor/internals/modules/notification"
	"urlmonitor/internals/modules/proxy"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeURLStore struct {
	mu     sync.Mutex
	urls   map[uuid.UUID]monitor.MonitoredURL
	checks []monitor.URLCheck
	snaps  []monitor.Snapshot
}

func newFakeURLStore(urls ...monitor.MonitoredURL) *fakeURLStore {
	s := &fakeURLStore{urls: make(map[uuid.UUID]monitor.MonitoredURL)}
	for _, u := range urls {
		s.urls[u.ID] = u
	}
	return s
}

func (s *fakeURLStore) GetByID(_ context.Context, urlID uuid.UUID) (monitor.MonitoredURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.urls[urlID]
	if !ok {
		return monitor.MonitoredURL{}, errors.New("url not found")
	}
	return u, nil
}

func (s *fakeURLStore) ListActive(_ context.Context) ([]monitor.MonitoredURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []monitor.MonitoredURL
	for _, u := range s.urls {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeURLStore) RecordCheck(_ context.Context, check monitor.URLCheck, snap monitor.Snapshot) (monitor.URLCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	check.ID = uuid.New()
	s.checks = append(s.checks, check)
	s.snaps = append(s.snaps, snap)

	u := s.urls[check.MonitoredURLID]
	u.Snapshot = snap
	s.urls[check.MonitoredURLID] = u
	return check, nil
}

type fakeProxyStore struct {
	proxies map[uuid.UUID]proxy.Proxy
}

func (s *fakeProxyStore) GetByID(_ context.Context, proxyID uuid.UUID) (proxy.Proxy, error) {
	p, ok := s.proxies[proxyID]
	if !ok {
		return proxy.Proxy{}, errors.New("proxy not found")
	}
	return p, nil
}

type fakeFetcher struct {
	mu        sync.Mutex
	out       Outcome
	calls     int
	lastProxy *url.URL
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, proxyURL *url.URL) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastProxy = proxyURL
	return f.out
}

type fakeNotifier struct {
	mu          sync.Mutex
	settings    notification.Settings
	settingsErr error
	dispatched  []notification.Event
	lastURL     monitor.MonitoredURL
}

func (n *fakeNotifier) Settings(_ context.Context) (notification.Settings, error) {
	return n.settings, n.settingsErr
}

func (n *fakeNotifier) Dispatch(_ context.Context, ev notification.Event, m monitor.MonitoredURL) notification.DispatchResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dispatched = append(n.dispatched, ev)
	n.lastURL = m
	return notification.DispatchResult{}
}

func okOutcome(code, ms int) Outcome {
	return Outcome{StatusCode: &code, ResponseTime: &ms}
}

func newTestExecutor(urls *fakeURLStore, proxies *fakeProxyStore, fetcher *fakeFetcher, notifier *fakeNotifier) *Executor {
	if proxies == nil {
		proxies = &fakeProxyStore{}
	}
	logger := zerolog.Nop()
	return NewExecutor(urls, proxies, fetcher, notifier, &logger)
}

func TestCheckNowRecordsCheckAndSnapshot(t *testing.T) {
	u := monitor.MonitoredURL{ID: uuid.New(), URL: "https://example.com", IsActive: true}
	store := newFakeURLStore(u)
	fetcher := &fakeFetcher{out: okOutcome(200, 42)}
	notifier := &fakeNotifier{}

	e := newTestExecutor(store, nil, fetcher, notifier)

	saved, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.UUID{}, saved.ID)
	require.NotNil(t, saved.StatusCode)
	assert.Equal(t, 200, *saved.StatusCode)

	require.Len(t, store.checks, 1)
	require.Len(t, store.snaps, 1)
	snap := store.snaps[0]
	require.NotNil(t, snap.LastCheck)
	require.NotNil(t, snap.LastStatusCode)
	assert.Equal(t, 200, *snap.LastStatusCode)
	require.NotNil(t, snap.LastResponseTime)
	assert.Equal(t, 42, *snap.LastResponseTime)
	assert.Nil(t, snap.LastError)
}

func TestCheckNowNotifiesOnNewError(t *testing.T) {
	prev := 200
	u := monitor.MonitoredURL{
		ID:       uuid.New(),
		URL:      "https://example.com",
		IsActive: true,
		Snapshot: monitor.Snapshot{LastStatusCode: &prev},
	}
	store := newFakeURLStore(u)
	errMsg := "Timeout"
	fetcher := &fakeFetcher{out: Outcome{Error: &errMsg}}
	notifier := &fakeNotifier{}

	e := newTestExecutor(store, nil, fetcher, notifier)

	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)

	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, notification.EventError, notifier.dispatched[0])
	// dispatched URL carries the fresh snapshot, not the stale one
	require.NotNil(t, notifier.lastURL.LastError)
	assert.Equal(t, "Timeout", *notifier.lastURL.LastError)
}

func TestCheckNowHTTPErrorStatusCountsAsError(t *testing.T) {
	prev := 200
	u := monitor.MonitoredURL{
		ID:       uuid.New(),
		URL:      "https://example.com",
		IsActive: true,
		Snapshot: monitor.Snapshot{LastStatusCode: &prev},
	}
	store := newFakeURLStore(u)
	fetcher := &fakeFetcher{out: okOutcome(503, 10)}
	notifier := &fakeNotifier{}

	e := newTestExecutor(store, nil, fetcher, notifier)

	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)

	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, notification.EventError, notifier.dispatched[0])
}

func TestCheckNowNoEventStaysSilent(t *testing.T) {
	prev := 200
	u := monitor.MonitoredURL{
		ID:       uuid.New(),
		URL:      "https://example.com",
		IsActive: true,
		Snapshot: monitor.Snapshot{LastStatusCode: &prev},
	}
	store := newFakeURLStore(u)
	fetcher := &fakeFetcher{out: okOutcome(200, 10)}
	notifier := &fakeNotifier{}

	e := newTestExecutor(store, nil, fetcher, notifier)

	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, notifier.dispatched)
}

func TestCheckNowSettingsFailureDoesNotFailCheck(t *testing.T) {
	u := monitor.MonitoredURL{ID: uuid.New(), URL: "https://example.com", IsActive: true}
	store := newFakeURLStore(u)
	fetcher := &fakeFetcher{out: okOutcome(200, 10)}
	notifier := &fakeNotifier{settingsErr: errors.New("db down")}

	e := newTestExecutor(store, nil, fetcher, notifier)

	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, store.checks, 1)
	assert.Empty(t, notifier.dispatched)
}

func TestCheckNowResolvesProxy(t *testing.T) {
	p := proxy.Proxy{ID: uuid.New(), Host: "10.0.0.1", Port: 8080, Protocol: proxy.ProtocolHTTP}
	u := monitor.MonitoredURL{ID: uuid.New(), URL: "https://example.com", ProxyID: &p.ID, IsActive: true}
	store := newFakeURLStore(u)
	fetcher := &fakeFetcher{out: okOutcome(200, 10)}
	notifier := &fakeNotifier{}
	proxies := &fakeProxyStore{proxies: map[uuid.UUID]proxy.Proxy{p.ID: p}}

	e := newTestExecutor(store, proxies, fetcher, notifier)

	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)

	require.NotNil(t, fetcher.lastProxy)
	assert.Equal(t, "http://10.0.0.1:8080", fetcher.lastProxy.String())
}

func TestCheckNowUnknownURL(t *testing.T) {
	store := newFakeURLStore()
	e := newTestExecutor(store, nil, &fakeFetcher{}, &fakeNotifier{})

	_, err := e.CheckNow(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestCheckAllSkipsInactiveAndCountsChecked(t *testing.T) {
	active := monitor.MonitoredURL{ID: uuid.New(), URL: "https://a.example.com", IsActive: true}
	inactive := monitor.MonitoredURL{ID: uuid.New(), URL: "https://b.example.com", IsActive: false}
	store := newFakeURLStore(active, inactive)
	fetcher := &fakeFetcher{out: okOutcome(200, 10)}

	e := newTestExecutor(store, nil, fetcher, &fakeNotifier{})

	checked, err := e.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	assert.Equal(t, 1, fetcher.calls)
}

func TestConsecutiveChecksUseFreshSnapshot(t *testing.T) {
	u := monitor.MonitoredURL{ID: uuid.New(), URL: "https://example.com", IsActive: true}
	store := newFakeURLStore(u)
	errMsg := "Timeout"
	fetcher := &fakeFetcher{out: Outcome{Error: &errMsg}}
	notifier := &fakeNotifier{}

	e := newTestExecutor(store, nil, fetcher, notifier)

	// first failure notifies, second identical failure does not
	_, err := e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)
	_, err = e.CheckNow(context.Background(), u.ID)
	require.NoError(t, err)

	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, notification.EventError, notifier.dispatched[0])
}
