package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoToken is returned when no bot token is configured.
var ErrNoToken = errors.New("telegram bot token not configured")

// ParseModeHTML renders message text as Telegram HTML.
const ParseModeHTML = "HTML"

// Client handles Telegram Bot API operations.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram Bot API client.
func NewClient(token, baseURL string, timeout time.Duration) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendMessageRequest represents the payload for sendMessage.
type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// APIError is a non-2xx answer from the Bot API.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram API error: status=%d, description=%s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram API error: status=%d", e.StatusCode)
}

// SendMessage delivers text to a single chat.
func (c *Client) SendMessage(ctx context.Context, chatID, text, parseMode string) error {
	if c.token == "" {
		return ErrNoToken
	}

	body, err := json.Marshal(SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL embeds the token; keep it out of logs.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiResp struct {
			Description string `json:"description"`
		}
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(bodyBytes, &apiResp)
		return &APIError{StatusCode: resp.StatusCode, Description: apiResp.Description}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
