package check

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := NewChecker(5 * time.Second)
	out := c.Fetch(context.Background(), srv.URL, nil)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, http.StatusOK, *out.StatusCode)
	require.NotNil(t, out.ResponseTime)
	assert.GreaterOrEqual(t, *out.ResponseTime, 0)
	assert.Nil(t, out.Error)
	assert.Nil(t, out.FinalURL)
	assert.Equal(t, 0, out.RedirectCount)
	assert.Nil(t, out.RedirectCode)
}

func TestFetchErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChecker(5 * time.Second)
	out := c.Fetch(context.Background(), srv.URL, nil)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, http.StatusInternalServerError, *out.StatusCode)
	assert.Nil(t, out.Error)
}

func TestFetchFollowsRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.Redirect(w, r, srv.URL+"/step", http.StatusFound)
		case "/step":
			http.Redirect(w, r, srv.URL+"/final", http.StatusMovedPermanently)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := NewChecker(5 * time.Second)
	out := c.Fetch(context.Background(), srv.URL, nil)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, http.StatusOK, *out.StatusCode)
	assert.Equal(t, 2, out.RedirectCount)
	require.NotNil(t, out.RedirectCode)
	assert.Equal(t, http.StatusFound, *out.RedirectCode)
	require.NotNil(t, out.FinalURL)
	assert.Equal(t, srv.URL+"/final", *out.FinalURL)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewChecker(50 * time.Millisecond)
	out := c.Fetch(context.Background(), srv.URL, nil)

	assert.Nil(t, out.StatusCode)
	require.NotNil(t, out.Error)
	assert.Equal(t, "Timeout", *out.Error)
	require.NotNil(t, out.ResponseTime)
	assert.GreaterOrEqual(t, *out.ResponseTime, 0)
}

func TestFetchConnectionError(t *testing.T) {
	// grab an address nothing listens on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewChecker(2 * time.Second)
	out := c.Fetch(context.Background(), addr, nil)

	assert.Nil(t, out.StatusCode)
	require.NotNil(t, out.Error)
	assert.True(t, strings.HasPrefix(*out.Error, "Connection error: "), "got %q", *out.Error)
	require.NotNil(t, out.ResponseTime)
}

func TestFetchSendsOnlyUserAgent(t *testing.T) {
	var gotReferer, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewChecker(5 * time.Second)
	c.Fetch(context.Background(), srv.URL, nil)

	assert.Equal(t, userAgent, gotUA)
	assert.Empty(t, gotReferer)
}

func TestFetchExactlyOneOfStatusOrError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewChecker(5 * time.Second)

	ok := c.Fetch(context.Background(), srv.URL, nil)
	assert.True(t, (ok.StatusCode != nil) != (ok.Error != nil))

	bad := c.Fetch(context.Background(), "http://127.0.0.1:1", nil)
	assert.True(t, (bad.StatusCode != nil) != (bad.Error != nil))
}

func TestClassifyTruncatesDetailOnly(t *testing.T) {
	msg := classify(errors.New(strings.Repeat("x", 500)))

	assert.Equal(t, "Error: "+strings.Repeat("x", maxErrorLen), msg)
	assert.Len(t, msg, len("Error: ")+maxErrorLen)
}

func TestClassifyProxyError(t *testing.T) {
	msg := classify(errors.New("proxyconnect tcp: dial tcp 10.0.0.1:8080: connection refused"))
	assert.True(t, strings.HasPrefix(msg, "Proxy error: "), "got %q", msg)

	msg = classify(errors.New("socks connect tcp 10.0.0.2:1080: dial error"))
	assert.True(t, strings.HasPrefix(msg, "Proxy error: "), "got %q", msg)
}
