package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIStub(t *testing.T, status int, body apiResponse, capture *sendMessageRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestSend(t *testing.T) {
	var got sendMessageRequest
	srv := newAPIStub(t, http.StatusOK, apiResponse{OK: true}, &got)
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	err := c.Send(context.Background(), "token123", "42", "<b>hello</b>")
	require.NoError(t, err)

	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "<b>hello</b>", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestSendWithoutToken(t *testing.T) {
	c := New()
	err := c.Send(context.Background(), "", "42", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token not configured")
}

func TestSendAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		description string
		wantErr     string
	}{
		{
			name:        "chat not found",
			status:      http.StatusBadRequest,
			description: "Bad Request: chat not found",
			wantErr:     "chat ID 42 not found, make sure you sent /start to the bot",
		},
		{
			name:        "bot blocked",
			status:      http.StatusForbidden,
			description: "Forbidden: bot was blocked by the user",
			wantErr:     "the user has blocked the bot",
		},
		{
			name:        "bad token",
			status:      http.StatusUnauthorized,
			description: "Unauthorized",
			wantErr:     "invalid bot token",
		},
		{
			name:        "anything else passes through",
			status:      http.StatusBadRequest,
			description: "Bad Request: message is too long",
			wantErr:     "telegram API error: Bad Request: message is too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAPIStub(t, tt.status, apiResponse{OK: false, Description: tt.description}, nil)
			defer srv.Close()

			c := NewWithBaseURL(srv.URL)
			err := c.Send(context.Background(), "token123", "42", "hello")
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
