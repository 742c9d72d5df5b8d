package check

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"urlmonitor/pkg/httpclient"
)

const (
	maxRedirects = 10

	// the longest error detail we persist; classifier prefixes are added on top
	maxErrorLen = 100

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Outcome is the result of one fetch attempt. Exactly one of StatusCode and
// Error is set: an HTTP response of any status (including 4xx/5xx) is a
// successful fetch, and a transport failure carries no status.
type Outcome struct {
	StatusCode    *int
	ResponseTime  *int // milliseconds, recorded for failures too
	Error         *string
	FinalURL      *string // set only when at least one redirect was followed
	RedirectCount int
	RedirectCode  *int // status of the first redirect response
}

// Checker performs the actual HTTP fetches. Each fetch gets its own client
// so per-URL proxies never leak between checks.
type Checker struct {
	timeout time.Duration
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{timeout: timeout}
}

// Fetch requests target, following up to maxRedirects redirects, and
// classifies any transport failure into a short persistable message.
// proxyURL may be nil for a direct connection. ResponseTime is recorded on
// failures too, measured from dispatch to the moment the error surfaced.
func (c *Checker) Fetch(ctx context.Context, target string, proxyURL *url.URL) Outcome {
	var out Outcome

	transport := httpclient.NewTransport(proxyURL)
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("stopped after 10 redirects")
			}
			out.RedirectCount++
			if out.RedirectCode == nil && req.Response != nil {
				code := req.Response.StatusCode
				out.RedirectCode = &code
			}
			return nil
		},
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		elapsed := int(time.Since(start).Milliseconds())
		msg := classify(err)
		out.Error = &msg
		out.ResponseTime = &elapsed
		return out
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		elapsed := int(time.Since(start).Milliseconds())
		msg := classify(err)
		out.Error = &msg
		out.ResponseTime = &elapsed
		return out
	}
	defer resp.Body.Close()

	// measure with the body fully read, like a client would experience it
	io.Copy(io.Discard, resp.Body)
	elapsed := int(time.Since(start).Milliseconds())

	out.StatusCode = &resp.StatusCode
	out.ResponseTime = &elapsed
	if out.RedirectCount > 0 {
		final := resp.Request.URL.String()
		out.FinalURL = &final
	}
	return out
}

// classify turns a transport error into the short message stored with the
// check. The prefixes distinguish timeouts, proxy failures and plain
// connection failures from everything else.
func classify(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return "Timeout"
	}

	msg := err.Error()
	var uerr *url.Error
	if errors.As(err, &uerr) {
		msg = uerr.Err.Error()
	}

	// the prefix is kept intact; only the detail is capped
	msg = truncate(msg, maxErrorLen)

	if strings.Contains(msg, "proxyconnect") || strings.Contains(msg, "socks connect") {
		return "Proxy error: " + msg
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return "Connection error: " + msg
	}
	return "Error: " + msg
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
