package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"urlmonitor/pkg/httpclient"
)

const defaultBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API directly; the service only needs
// sendMessage, so a bot framework would be dead weight.
type Client struct {
	baseURL string
	http    *http.Client
}

func New() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    httpclient.NewClient(30 * time.Second),
	}
}

// NewWithBaseURL points the client at a different API host (tests).
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.NewClient(30 * time.Second),
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send posts an HTML-formatted message to chatID. API failures come back as
// user-facing error descriptions.
func (c *Client) Send(ctx context.Context, token, chatID, html string) error {
	if token == "" {
		return fmt.Errorf("telegram bot token not configured")
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      html,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}

	return mapAPIError(chatID, apiResp.Description)
}

// mapAPIError turns Bot API descriptions into messages an operator can act on.
func mapAPIError(chatID, description string) error {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "chat not found"):
		return fmt.Errorf("chat ID %s not found, make sure you sent /start to the bot", chatID)
	case strings.Contains(desc, "bot was blocked"):
		return fmt.Errorf("the user has blocked the bot")
	case strings.Contains(desc, "unauthorized"):
		return fmt.Errorf("invalid bot token")
	default:
		return fmt.Errorf("telegram API error: %s", description)
	}
}
