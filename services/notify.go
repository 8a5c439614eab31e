package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/igreja-site/cms-backend/config"
	"github.com/igreja-site/cms-backend/models"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailNotifier mails the editorial team through Resend when a post is
// published.
type EmailNotifier struct {
	apiKey     string
	from       string
	recipients []string
	baseURL    string
	endpoint   string
	client     *http.Client
}

// NewEmailNotifier reads RESEND_API_KEY, RESEND_FROM_EMAIL and
// PUBLISH_NOTIFY_EMAILS. It returns nil when any of them is missing.
func NewEmailNotifier(cfg map[string]string) *EmailNotifier {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	recipients := config.GetStrings(cfg, "PUBLISH_NOTIFY_EMAILS")
	if apiKey == "" || from == "" || len(recipients) == 0 {
		return nil
	}
	return &EmailNotifier{
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		baseURL:    GetBaseURL(cfg),
		endpoint:   resendEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *EmailNotifier) PostPublished(ctx context.Context, post models.Post) error {
	url := BuildPostURL(n.baseURL, post)
	subject := fmt.Sprintf("Novo post publicado: %s", post.Content.Title)
	body := fmt.Sprintf(`<p>O post <strong>%s</strong> foi publicado.</p><p><a href="%s">%s</a></p>`,
		html.EscapeString(post.Content.Title), html.EscapeString(url), html.EscapeString(url))
	return n.SendEmail(ctx, subject, body, n.recipients)
}

// SendEmail sends an HTML email using the Resend API
func (n *EmailNotifier) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    n.from,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}
