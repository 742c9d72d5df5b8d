package notification

import (
	"fmt"
	"strings"
	"urlmonitor/internals/modules/monitor"
)

// Format renders the subject, plain-text body (email) and HTML body
// (Telegram) for an event, based on the URL's cached snapshot. Regular-check
// messages reflect the status band; error and recovery events carry fixed
// subjects.
func Format(ev Event, m monitor.MonitoredURL) (subject, plain, html string) {
	var emoji, status string

	switch {
	case ev == EventRecovery:
		emoji, status = "✅", "RECOVERED"
		subject = fmt.Sprintf("✅ RECOVERED: %s", m.Label())
	case ev == EventRegularCheck:
		code := m.LastStatusCode
		switch {
		case code != nil && *code >= 200 && *code < 300:
			emoji, status = "✅", "OK"
		case code != nil && *code >= 300 && *code < 400:
			emoji, status = "↪️", "REDIRECT"
		case code != nil && *code >= 400:
			emoji, status = "🚨", "ERROR"
		default:
			emoji, status = "⚠️", "CHECK"
		}
		subject = fmt.Sprintf("%s %s: %s", emoji, status, m.Label())
	default:
		// new error and status change share the alert shape
		emoji, status = "🚨", "ERROR"
		subject = fmt.Sprintf("🚨 ALERT: %s", m.Label())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", emoji, status)
	fmt.Fprintf(&b, "<b>URL:</b> %s\n", m.URL)
	if m.Name != "" {
		fmt.Fprintf(&b, "<b>Name:</b> %s\n", m.Name)
	}
	fmt.Fprintf(&b, "<b>Status code:</b> %s\n", orNA(intStr(m.LastStatusCode)))
	fmt.Fprintf(&b, "<b>Response time:</b> %s ms\n", orNA(intStr(m.LastResponseTime)))
	if m.LastError != nil {
		fmt.Fprintf(&b, "<b>Error:</b> %s\n", *m.LastError)
	}
	if m.LastFinalURL != nil && *m.LastFinalURL != m.URL {
		fmt.Fprintf(&b, "<b>Final URL:</b> %s\n", *m.LastFinalURL)
	}
	checkedAt := "N/A"
	if m.LastCheck != nil {
		checkedAt = m.LastCheck.Format("02.01.2006 15:04:05")
	}
	fmt.Fprintf(&b, "\n<i>Time: %s</i>", checkedAt)

	html = b.String()
	plain = stripTags(html)
	return subject, plain, html
}

func intStr(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

var tagReplacer = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "")

func stripTags(s string) string {
	return tagReplacer.Replace(s)
}

// TestMessage is the body for the notification test endpoint.
func TestMessage() (subject, plain, html string) {
	html = "📡 <b>Test notification</b>\n\n" +
		"This is a test message from URL Monitor.\n" +
		"If you received it, notifications are configured correctly!"
	return "📡 URL Monitor - Test Notification", stripTags(html), html
}
