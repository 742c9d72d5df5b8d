package monitor

import (
	"time"

	"github.com/google/uuid"
)

// MinCheckInterval is the smallest allowed check interval in seconds,
// enforced at creation and import only.
const MinCheckInterval = 10

// DefaultCheckInterval applies when an import row omits the interval.
const DefaultCheckInterval = 60

// Snapshot is the cached last-result state on a monitored URL. It always
// reflects the most recently completed check and is overwritten whole, never
// field by field.
type Snapshot struct {
	LastCheck         *time.Time
	LastStatusCode    *int
	LastResponseTime  *int
	LastError         *string
	LastFinalURL      *string
	LastRedirectCount int
	LastRedirectCode  *int
}

type MonitoredURL struct {
	ID            uuid.UUID
	URL           string
	ReferralURL   string
	Name          string
	ProxyID       *uuid.UUID
	CheckInterval int // seconds
	IsActive      bool
	CreatedAt     time.Time
	Snapshot
}

// Label is what notifications and logs display for the URL.
func (m MonitoredURL) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.URL
}

// URLCheck is one append-only check record. Rows are never updated; they go
// away only when the parent URL is deleted.
type URLCheck struct {
	ID             uuid.UUID
	MonitoredURLID uuid.UUID
	StatusCode     *int
	ResponseTime   *int // milliseconds
	ErrorMessage   *string
	CheckedAt      time.Time
}

type CreateURLCmd struct {
	URL           string
	ReferralURL   string
	Name          string
	ProxyID       *uuid.UUID
	CheckInterval int
	IsActive      bool
}

type Stats struct {
	TotalURLs    int
	ActiveURLs   int
	URLs200      int
	URLsError    int
	TotalProxies int
}
