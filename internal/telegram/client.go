// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package telegram sends appointment requests to a chat through the
// Telegram Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the public Bot API endpoint.
	DefaultAPIURL = "https://api.telegram.org"

	sendTimeout = 10 * time.Second

	// Bot API error bodies are tiny; anything larger is not a Bot API reply.
	maxResponseBytes = 1 << 20
)

// ErrNotConfigured is returned when the bot token or chat id is missing.
// Its text is shown to the site owner in logs and the submissions list.
var ErrNotConfigured = errors.New("Telegram настройки не установлены") //nolint:staticcheck // user-facing Russian text

// APIError is a well-formed Bot API reply with ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return "Telegram API: " + e.Description
}

// Sender delivers a formatted message to the configured chat.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Config holds bot credentials.
type Config struct {
	APIURL   string
	BotToken string
	ChatID   string
}

// Client is a Bot API client for one bot and one chat.
type Client struct {
	apiURL string
	token  string
	chatID string
	http   *http.Client
}

// NewClient creates a client. A nil httpClient gets a 10 second timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: sendTimeout}
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		token:  strings.TrimSpace(cfg.BotToken),
		chatID: strings.TrimSpace(cfg.ChatID),
		http:   httpClient,
	}
}

// Configured reports whether both token and chat id are set.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send issues one GET sendMessage call with Markdown parse mode. There is no
// retry; the caller decides what a failure means.
func (c *Client) Send(ctx context.Context, text string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	q := url.Values{}
	q.Set("chat_id", c.chatID)
	q.Set("text", text)
	q.Set("parse_mode", "Markdown")
	endpoint := c.apiURL + "/bot" + c.token + "/sendMessage?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", redactToken(err, c.token))
	}
	defer func() { _ = resp.Body.Close() }()

	var result apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return fmt.Errorf("parsing telegram response (status %d): %w", resp.StatusCode, err)
	}
	if !result.OK {
		return &APIError{Code: result.ErrorCode, Description: result.Description}
	}
	return nil
}

// redactToken strips the bot token from transport errors, which embed the
// request URL.
func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
}
