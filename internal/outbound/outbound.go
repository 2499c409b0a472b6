// Package outbound implements the delivery clients that push replies back
// to the channel providers (Telegram Bot API, Meta Graph API). Delivery is
// fire-and-forget relative to the persisted pipeline state: the inbound
// transaction has already committed when a send happens, so a failed or
// timed-out send is logged by the caller and never rolls anything back.
package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// Deliverer sends one text message to an external user on a channel.
// Credentials are the integration's decrypted channel secrets.
type Deliverer interface {
	// Send delivers text to the destination external user id. creds holds
	// the channel-specific plaintext credentials (bot token or access
	// token plus addressing id).
	Send(ctx context.Context, ch domain.Channel, creds Credentials, destination, text string) error
}

// Credentials carries the decrypted secrets a send call needs.
type Credentials struct {
	// BotToken is the Telegram bot token.
	BotToken string
	// AccessToken is the Meta Graph API token (WhatsApp, Instagram).
	AccessToken string
	// SenderID is the sending identity on Meta channels: the
	// phone_number_id for WhatsApp or the page id for Instagram.
	SenderID string
}

// Client is the HTTP-backed Deliverer. Base URLs are overridable for tests.
type Client struct {
	HTTP            *http.Client
	TelegramBaseURL string
	GraphBaseURL    string
	GraphVersion    string
}

// NewClient constructs a delivery client with a bounded per-call timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		HTTP:            &http.Client{Timeout: timeout},
		TelegramBaseURL: "https://api.telegram.org",
		GraphBaseURL:    "https://graph.facebook.com",
		GraphVersion:    "v19.0",
	}
}

// Send implements Deliverer by dispatching on the channel tag.
func (c *Client) Send(ctx context.Context, ch domain.Channel, creds Credentials, destination, text string) error {
	switch ch {
	case domain.ChannelTelegram:
		return c.sendTelegram(ctx, creds.BotToken, destination, text)
	case domain.ChannelWhatsApp:
		return c.sendWhatsApp(ctx, creds, destination, text)
	case domain.ChannelInstagram:
		return c.sendInstagram(ctx, creds, destination, text)
	default:
		return fmt.Errorf("outbound: unknown channel %q", ch)
	}
}

// sendTelegram calls the Bot API sendMessage method.
func (c *Client) sendTelegram(ctx context.Context, botToken, chatID, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.TelegramBaseURL, botToken)
	return c.post(ctx, "telegram sendMessage", url, "", map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
}

// sendWhatsApp calls the Cloud API messages endpoint for the integration's
// phone number id.
func (c *Client) sendWhatsApp(ctx context.Context, creds Credentials, to, text string) error {
	url := fmt.Sprintf("%s/%s/%s/messages", c.GraphBaseURL, c.GraphVersion, creds.SenderID)
	return c.post(ctx, "whatsapp messages", url, creds.AccessToken, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	})
}

// sendInstagram calls the Graph API page messages endpoint.
func (c *Client) sendInstagram(ctx context.Context, creds Credentials, recipientID, text string) error {
	url := fmt.Sprintf("%s/%s/%s/messages", c.GraphBaseURL, c.GraphVersion, creds.SenderID)
	return c.post(ctx, "instagram messages", url, creds.AccessToken, map[string]any{
		"recipient": map[string]any{"id": recipientID},
		"message":   map[string]any{"text": text},
	})
}

// post issues the request and reports failures under op, never the URL,
// so bot tokens embedded in Telegram paths stay out of logs.
func (c *Client) post(ctx context.Context, op, url, bearer string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// url.Error echoes the full request URL; unwrap to the cause only.
		if uerr, ok := err.(*neturl.Error); ok {
			return fmt.Errorf("outbound: %s: %w", op, uerr.Err)
		}
		return fmt.Errorf("outbound: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Providers return structured errors; keep a short excerpt for the log.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("outbound: %s returned %d: %s", op, resp.StatusCode, excerpt)
	}
	return nil
}
