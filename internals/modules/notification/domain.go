package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// Settings is the single global notification configuration row, created
// lazily with defaults on first access.
type Settings struct {
	ID                   uuid.UUID
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	SMTPFromEmail        string
	SMTPUseTLS           bool
	TelegramBotToken     string
	NotifyOnError        bool
	NotifyOnRecovery     bool
	NotifyOnStatusChange bool
	NotifyOnEveryCheck   bool
	UpdatedAt            time.Time
}

type Recipient struct {
	ID        uuid.UUID
	Channel   string
	Address   string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

type CreateRecipientCmd struct {
	Channel  string
	Address  string
	Name     string
	IsActive bool
}

// Event is the notification action selected for one completed check.
type Event int

const (
	EventNone Event = iota
	EventRegularCheck
	EventError
	EventRecovery
	EventStatusChange
)

func (e Event) String() string {
	switch e {
	case EventRegularCheck:
		return "regular-check"
	case EventError:
		return "error"
	case EventRecovery:
		return "recovery"
	case EventStatusChange:
		return "status-change"
	default:
		return "none"
	}
}

// RecipientResult reports one delivery attempt.
type RecipientResult struct {
	Address string
	Success bool
	Error   string
}

// DispatchResult is the per-channel delivery breakdown. Skipped is set when
// settings gated the event off entirely.
type DispatchResult struct {
	Skipped  bool
	Email    []RecipientResult
	Telegram []RecipientResult
}
