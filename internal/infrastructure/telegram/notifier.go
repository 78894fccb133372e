package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ArticleGate/internal/ports"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	// maxMessageLen is the Bot API limit for a single message.
	maxMessageLen = 4096
	maxErrorBody  = 64 << 10
)

// ErrRateLimited is returned when the Bot API asks the caller to back off.
var ErrRateLimited = errors.New("telegram rate limited")

// Notifier sends blocked-article alerts to an editorial Telegram chat.
type Notifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishAlert posts message as plain text with link previews disabled.
func (n *Notifier) PublishAlert(ctx context.Context, message string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", truncate(message, maxMessageLen))
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

func (n *Notifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimSuffix(n.apiBase, "/"), n.botToken, method)
}

// checkResponse accepts a 200 whose envelope is ok (or absent), and turns anything else
// into an error carrying the Bot API description.
func checkResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope apiResponse
	decoded := json.Unmarshal(body, &envelope) == nil

	if resp.StatusCode == http.StatusOK && (!decoded || envelope.OK) {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retry := resp.Header.Get("Retry-After")
		if decoded && envelope.Parameters != nil && envelope.Parameters.RetryAfter > 0 {
			retry = strconv.Itoa(envelope.Parameters.RetryAfter)
		}
		return fmt.Errorf("%w: retry after %ss", ErrRateLimited, retry)
	}

	if decoded && envelope.Description != "" {
		return fmt.Errorf("telegram error: %s: %s", resp.Status, envelope.Description)
	}
	return fmt.Errorf("telegram error: %s", resp.Status)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
