package notification

import (
	"testing"
	"time"
	"urlmonitor/internals/modules/monitor"

	"github.com/stretchr/testify/assert"
)

func sampleURL() monitor.MonitoredURL {
	checked := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	code := 200
	rt := 123
	return monitor.MonitoredURL{
		URL:  "https://example.com",
		Name: "Example",
		Snapshot: monitor.Snapshot{
			LastCheck:        &checked,
			LastStatusCode:   &code,
			LastResponseTime: &rt,
		},
	}
}

func TestFormatSubjects(t *testing.T) {
	m := sampleURL()

	subject, _, _ := Format(EventRecovery, m)
	assert.Equal(t, "✅ RECOVERED: Example", subject)

	subject, _, _ = Format(EventError, m)
	assert.Equal(t, "🚨 ALERT: Example", subject)

	subject, _, _ = Format(EventStatusChange, m)
	assert.Equal(t, "🚨 ALERT: Example", subject)

	subject, _, _ = Format(EventRegularCheck, m)
	assert.Equal(t, "✅ OK: Example", subject)
}

func TestFormatRegularCheckBands(t *testing.T) {
	m := sampleURL()

	*m.LastStatusCode = 302
	subject, _, _ := Format(EventRegularCheck, m)
	assert.Equal(t, "↪️ REDIRECT: Example", subject)

	*m.LastStatusCode = 500
	subject, _, _ = Format(EventRegularCheck, m)
	assert.Equal(t, "🚨 ERROR: Example", subject)

	m.LastStatusCode = nil
	subject, _, _ = Format(EventRegularCheck, m)
	assert.Equal(t, "⚠️ CHECK: Example", subject)
}

func TestFormatBody(t *testing.T) {
	m := sampleURL()
	final := "https://example.com/landing"
	m.LastFinalURL = &final

	_, plain, html := Format(EventRegularCheck, m)

	assert.Contains(t, html, "<b>URL:</b> https://example.com")
	assert.Contains(t, html, "<b>Name:</b> Example")
	assert.Contains(t, html, "<b>Status code:</b> 200")
	assert.Contains(t, html, "<b>Response time:</b> 123 ms")
	assert.Contains(t, html, "<b>Final URL:</b> https://example.com/landing")
	assert.Contains(t, html, "Time: 29.08.2026 10:30:00")

	assert.NotContains(t, plain, "<b>")
	assert.NotContains(t, plain, "</b>")
	assert.Contains(t, plain, "URL: https://example.com")
}

func TestFormatErrorBody(t *testing.T) {
	m := sampleURL()
	m.LastStatusCode = nil
	m.LastResponseTime = nil
	msg := "Timeout"
	m.LastError = &msg

	_, plain, _ := Format(EventError, m)

	assert.Contains(t, plain, "Status code: N/A")
	assert.Contains(t, plain, "Response time: N/A ms")
	assert.Contains(t, plain, "Error: Timeout")
}

func TestFormatFinalURLOmittedWhenSame(t *testing.T) {
	m := sampleURL()
	same := m.URL
	m.LastFinalURL = &same

	_, _, html := Format(EventRegularCheck, m)
	assert.NotContains(t, html, "Final URL")
}
