package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultTextbeltURL = "https://textbelt.com/text"

var ErrSMSRejected = errors.New("sms rejected by provider")

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// TextbeltSender posts messages to the Textbelt API.
type TextbeltSender struct {
	url    string
	key    string
	client *http.Client
}

func NewTextbeltSender(url, key string, timeout time.Duration) *TextbeltSender {
	if url == "" {
		url = defaultTextbeltURL
	}
	return &TextbeltSender{
		url:    url,
		key:    key,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *TextbeltSender) SendSMS(ctx context.Context, phone, message string) error {
	if phone == "" {
		return errors.New("sms: phone required")
	}
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.key,
	})
	if err != nil {
		return fmt.Errorf("sms: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(postBody))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms: textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("sms: decode textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrSMSRejected, result.Error)
	}
	return nil
}
