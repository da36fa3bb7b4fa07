package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
	apiURL    string
}

// NewResendSender creates a ResendSender with the given API key.
func NewResendSender(apiKey, fromName, fromEmail string) *ResendSender {
	return &ResendSender{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: 15 * time.Second},
		apiURL:    resendAPIURL,
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendSignInLinkEmail sends the sign-in link message.
func (s *ResendSender) SendSignInLinkEmail(ctx context.Context, toEmail, signInURL string) error {
	content, err := renderSignInLinkEmail(signInURL)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectSignInLink, content)
}

func (s *ResendSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := resendPayload{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		HTML:    htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("resend api status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
