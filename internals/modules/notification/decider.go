package notification

// Transition captures the previous and current outcome of one monitored URL
// around a completed check. A status code of nil means no status was
// observed (network failure, or never checked before).
type Transition struct {
	PreviousWasError bool
	CurrentIsError   bool
	PreviousStatus   *int
	CurrentStatus    *int
}

// Decide picks at most one notification event for a completed check.
// Priority order, first match wins:
//
//  1. notify-on-every-check sends unconditionally and overrides the rest.
//  2. A fresh error (was fine, now failing).
//  3. A recovery (was failing, now fine) — only if a previous status exists,
//     so the very first check of a URL never counts as a recovery.
//  4. Any status-code change, if enabled and a previous status exists. This
//     fires even for error-to-error changes such as 500 -> 503.
//
// Channel toggles (notify-on-error / notify-on-recovery) are applied at
// dispatch, not here.
func Decide(t Transition, s Settings) Event {
	switch {
	case s.NotifyOnEveryCheck:
		return EventRegularCheck
	case t.CurrentIsError && !t.PreviousWasError:
		return EventError
	case !t.CurrentIsError && t.PreviousWasError && t.PreviousStatus != nil:
		return EventRecovery
	case s.NotifyOnStatusChange && t.PreviousStatus != nil && !statusEqual(t.PreviousStatus, t.CurrentStatus):
		return EventStatusChange
	default:
		return EventNone
	}
}

func statusEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
