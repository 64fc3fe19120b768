// Package whatsapp envía mensajes de texto por la WhatsApp Cloud API (Graph API).
package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"catbox/internal/platform/httpclient"
	"catbox/internal/platform/phone"
)

const DefaultAPIBaseURL = "https://graph.facebook.com/v17.0"

var (
	ErrNotConfigured = errors.New("whatsapp cloud api not configured")
	ErrSendFailed    = errors.New("whatsapp send failed")
)

type Config struct {
	APIBaseURL    string
	AccessToken   string
	PhoneNumberID string
	Timeout       time.Duration
}

type Client struct {
	http          *httpclient.Client
	phoneNumberID string
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" || strings.TrimSpace(cfg.PhoneNumberID) == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimSpace(cfg.APIBaseURL)
	if base == "" {
		base = DefaultAPIBaseURL
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Headers = map[string]string{"Authorization": "Bearer " + strings.TrimSpace(cfg.AccessToken)}

	return &Client{http: hc, phoneNumberID: strings.TrimSpace(cfg.PhoneNumberID)}, nil
}

type textBody struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText implementa notifications.Sender. to puede venir en cualquier formato;
// la API recibe solo dígitos con código de país.
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	if c == nil || c.http == nil {
		return "", ErrNotConfigured
	}
	digits := phone.Digits(phone.FormatE164(to))
	if digits == "" {
		return "", fmt.Errorf("%w: empty recipient", ErrSendFailed)
	}

	req := sendRequest{
		MessagingProduct: "whatsapp",
		To:               digits,
		Type:             "text",
		Text:             textBody{Body: body},
	}

	var out sendResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/"+c.phoneNumberID+"/messages", nil, req, &out); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSendFailed, upstreamMessage(err))
	}
	if len(out.Messages) == 0 || out.Messages[0].ID == "" {
		return "", fmt.Errorf("%w: response without message id", ErrSendFailed)
	}
	return out.Messages[0].ID, nil
}

// upstreamMessage extrae error.message del body de Graph si viene.
func upstreamMessage(err error) string {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		var ae apiError
		if json.Unmarshal([]byte(he.Body), &ae) == nil && ae.Error.Message != "" {
			return ae.Error.Message
		}
	}
	return err.Error()
}
