// Package mail delivers transactional email through the Brevo REST API.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

const sendPath = "/v3/smtp/email"

// Brevo is a thin client over the SMTP send endpoint. Attachments travel
// base64-encoded in the request body.
type Brevo struct {
	baseURL     string
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
	log         zerolog.Logger
}

func NewBrevo(baseURL, apiKey, senderName, senderEmail string, httpClient *http.Client, log zerolog.Logger) *Brevo {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Brevo{
		baseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:      strings.TrimSpace(apiKey),
		senderName:  senderName,
		senderEmail: senderEmail,
		httpClient:  httpClient,
		log:         log,
	}
}

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoSendRequest struct {
	Sender      brevoParty        `json:"sender"`
	To          []brevoParty      `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// Send posts one message. Any non-2xx answer comes back as an error carrying
// a snippet of the API response body.
func (b *Brevo) Send(ctx context.Context, msg ports.MailMessage) error {
	if b.apiKey == "" {
		return fmt.Errorf("brevo: api key not configured")
	}

	payload := brevoSendRequest{
		Sender:      brevoParty{Name: b.senderName, Email: b.senderEmail},
		To:          []brevoParty{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
	}
	if len(msg.Attachment) > 0 {
		payload.Attachment = []brevoAttachment{{
			Name:    msg.AttachmentName,
			Content: base64.StdEncoding.EncodeToString(msg.Attachment),
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		b.log.Error().
			Int("status", resp.StatusCode).
			Str("to", msg.To).
			Msg("brevo send rejected")
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	b.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}
