package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		t        Transition
		settings Settings
		want     Event
	}{
		{
			name: "new error fires",
			t: Transition{
				PreviousWasError: false,
				CurrentIsError:   true,
				PreviousStatus:   intPtr(200),
				CurrentStatus:    intPtr(500),
			},
			want: EventError,
		},
		{
			name: "recovery fires",
			t: Transition{
				PreviousWasError: true,
				CurrentIsError:   false,
				PreviousStatus:   intPtr(500),
				CurrentStatus:    intPtr(200),
			},
			want: EventRecovery,
		},
		{
			name: "first check never recovers",
			t: Transition{
				PreviousWasError: true, // nil previous status counts as error state
				CurrentIsError:   false,
				PreviousStatus:   nil,
				CurrentStatus:    intPtr(200),
			},
			want: EventNone,
		},
		{
			name: "steady ok stays silent",
			t: Transition{
				PreviousStatus: intPtr(200),
				CurrentStatus:  intPtr(200),
			},
			want: EventNone,
		},
		{
			name: "steady error stays silent",
			t: Transition{
				PreviousWasError: true,
				CurrentIsError:   true,
				PreviousStatus:   intPtr(500),
				CurrentStatus:    intPtr(500),
			},
			want: EventNone,
		},
		{
			name: "error to error status change fires when enabled",
			t: Transition{
				PreviousWasError: true,
				CurrentIsError:   true,
				PreviousStatus:   intPtr(500),
				CurrentStatus:    intPtr(503),
			},
			settings: Settings{NotifyOnStatusChange: true},
			want:     EventStatusChange,
		},
		{
			name: "status change disabled stays silent",
			t: Transition{
				PreviousStatus: intPtr(200),
				CurrentStatus:  intPtr(301),
			},
			want: EventNone,
		},
		{
			name: "status change needs a previous status",
			t: Transition{
				PreviousStatus: nil,
				CurrentStatus:  intPtr(200),
			},
			settings: Settings{NotifyOnStatusChange: true},
			want:     EventNone,
		},
		{
			name: "every check overrides everything",
			t: Transition{
				PreviousStatus: intPtr(200),
				CurrentStatus:  intPtr(200),
			},
			settings: Settings{NotifyOnEveryCheck: true},
			want:     EventRegularCheck,
		},
		{
			name: "every check wins over a new error",
			t: Transition{
				CurrentIsError: true,
				CurrentStatus:  intPtr(500),
				PreviousStatus: intPtr(200),
			},
			settings: Settings{NotifyOnEveryCheck: true},
			want:     EventRegularCheck,
		},
		{
			name: "error takes priority over status change",
			t: Transition{
				CurrentIsError: true,
				PreviousStatus: intPtr(200),
				CurrentStatus:  intPtr(500),
			},
			settings: Settings{NotifyOnStatusChange: true},
			want:     EventError,
		},
		{
			name: "lost status entirely counts as a change",
			t: Transition{
				PreviousWasError: true,
				CurrentIsError:   true,
				PreviousStatus:   intPtr(500),
				CurrentStatus:    nil,
			},
			settings: Settings{NotifyOnStatusChange: true},
			want:     EventStatusChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.t, tt.settings))
		})
	}
}
