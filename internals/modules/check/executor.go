package check

import (
	"context"
	"net/url"
	"sync"
	"time"

	"urlmonitor/internals/modules/monitor"
	"urlmonitor/internals/modules/notification"
	"urlmonitor/internals/modules/proxy"
	"urlmonitor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type URLStore interface {
	GetByID(ctx context.Context, urlID uuid.UUID) (monitor.MonitoredURL, error)
	ListActive(ctx context.Context) ([]monitor.MonitoredURL, error)
	RecordCheck(ctx context.Context, check monitor.URLCheck, snap monitor.Snapshot) (monitor.URLCheck, error)
}

type ProxyStore interface {
	GetByID(ctx context.Context, proxyID uuid.UUID) (proxy.Proxy, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, target string, proxyURL *url.URL) Outcome
}

type Notifier interface {
	Settings(ctx context.Context) (notification.Settings, error)
	Dispatch(ctx context.Context, ev notification.Event, m monitor.MonitoredURL) notification.DispatchResult
}

// Executor runs checks end to end: fetch, persist the check and the URL
// snapshot, then decide and send notifications. Checks for the same URL are
// serialized so a manual check and a scheduled one cannot interleave their
// previous-state reads.
type Executor struct {
	urls     URLStore
	proxies  ProxyStore
	fetcher  Fetcher
	notifier Notifier
	logger   *zerolog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewExecutor(urls URLStore, proxies ProxyStore, fetcher Fetcher, notifier Notifier, logger *zerolog.Logger) *Executor {
	return &Executor{
		urls:     urls,
		proxies:  proxies,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (e *Executor) urlLock(urlID uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[urlID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[urlID] = l
	}
	return l
}

// CheckNow checks one URL immediately and returns the persisted check row.
func (e *Executor) CheckNow(ctx context.Context, urlID uuid.UUID) (monitor.URLCheck, error) {
	lock := e.urlLock(urlID)
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock so the previous-state snapshot is the one the
	// last completed check wrote
	m, err := e.urls.GetByID(ctx, urlID)
	if err != nil {
		return monitor.URLCheck{}, err
	}
	return e.run(ctx, m)
}

// CheckAll checks every active URL sequentially and returns how many checks
// completed. Individual failures are logged and do not stop the sweep.
func (e *Executor) CheckAll(ctx context.Context) (int, error) {
	const op string = "check.executor.CheckAll"

	urls, err := e.urls.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	checked := 0
	for i := range urls {
		if _, err := e.CheckNow(ctx, urls[i].ID); err != nil {
			e.logger.Error().Err(err).
				Str("op", op).
				Str("url_id", urls[i].ID.String()).
				Str("url", urls[i].URL).
				Msg("check failed during sweep")
			continue
		}
		checked++
	}
	return checked, nil
}

func (e *Executor) run(ctx context.Context, m monitor.MonitoredURL) (monitor.URLCheck, error) {
	prev := m.Snapshot

	proxyURL, err := e.resolveProxy(ctx, m)
	if err != nil {
		return monitor.URLCheck{}, err
	}

	out := e.fetcher.Fetch(ctx, m.URL, proxyURL)
	checkedAt := time.Now().UTC()

	check := monitor.URLCheck{
		MonitoredURLID: m.ID,
		StatusCode:     out.StatusCode,
		ResponseTime:   out.ResponseTime,
		ErrorMessage:   out.Error,
		CheckedAt:      checkedAt,
	}
	snap := monitor.Snapshot{
		LastCheck:         &checkedAt,
		LastStatusCode:    out.StatusCode,
		LastResponseTime:  out.ResponseTime,
		LastError:         out.Error,
		LastFinalURL:      out.FinalURL,
		LastRedirectCount: out.RedirectCount,
		LastRedirectCode:  out.RedirectCode,
	}

	saved, err := e.urls.RecordCheck(ctx, check, snap)
	if err != nil {
		return monitor.URLCheck{}, err
	}

	e.notify(ctx, m, prev, snap)
	return saved, nil
}

// notify decides whether this check warrants a notification and sends it.
// Notification failures never fail the check itself.
func (e *Executor) notify(ctx context.Context, m monitor.MonitoredURL, prev, curr monitor.Snapshot) {
	const op string = "check.executor.notify"

	settings, err := e.notifier.Settings(ctx)
	if err != nil {
		e.logger.Error().Err(err).Str("op", op).Msg("failed to load notification settings")
		return
	}

	t := notification.Transition{
		PreviousWasError: isError(prev.LastStatusCode, prev.LastError),
		CurrentIsError:   isError(curr.LastStatusCode, curr.LastError),
		PreviousStatus:   prev.LastStatusCode,
		CurrentStatus:    curr.LastStatusCode,
	}

	ev := notification.Decide(t, settings)
	if ev == notification.EventNone {
		return
	}

	m.Snapshot = curr
	result := e.notifier.Dispatch(ctx, ev, m)
	if result.Skipped {
		return
	}
	e.logger.Info().
		Str("op", op).
		Str("url_id", m.ID.String()).
		Str("event", ev.String()).
		Int("email_sent", countSent(result.Email)).
		Int("telegram_sent", countSent(result.Telegram)).
		Msg("notification dispatched")
}

// isError mirrors how a check outcome is judged: any transport failure, or
// an HTTP status of 400 and above.
func isError(status *int, errMsg *string) bool {
	if errMsg != nil {
		return true
	}
	return status != nil && *status >= 400
}

func countSent(results []notification.RecipientResult) int {
	n := 0
	for i := range results {
		if results[i].Success {
			n++
		}
	}
	return n
}

func (e *Executor) resolveProxy(ctx context.Context, m monitor.MonitoredURL) (*url.URL, error) {
	const op string = "check.executor.resolveProxy"

	if m.ProxyID == nil {
		return nil, nil
	}

	p, err := e.proxies.GetByID(ctx, *m.ProxyID)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(p.DialURL())
	if err != nil {
		return nil, &apperror.Error{
			Kind:    apperror.Internal,
			Op:      op,
			Err:     err,
			Message: "invalid proxy address",
		}
	}
	return u, nil
}
