// Package channel implements the provider-specific halves of the inbound
// pipeline: parsing each provider's webhook payload shape into a neutral
// form, and the two signature verification strategies (shared-secret header
// for Telegram, HMAC body signature for the Meta platforms). The pipeline
// dispatches on the channel tag instead of branching inline per provider.
package channel

import (
	"errors"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// Webhook header names.
const (
	// HeaderTelegramSecret carries the optional shared secret configured
	// when the Telegram webhook was registered.
	HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"

	// HeaderMetaSignature carries the HMAC-SHA256 signature Meta computes
	// over the raw request body for WhatsApp and Instagram webhooks.
	HeaderMetaSignature = "X-Hub-Signature-256"
)

var (
	// ErrUnknownChannel is returned when a webhook arrives for a channel
	// outside the supported enum.
	ErrUnknownChannel = errors.New("channel: unknown channel")

	// ErrMalformedPayload is returned when a body cannot be decoded as the
	// provider's JSON shape.
	ErrMalformedPayload = errors.New("channel: malformed payload")

	// ErrMissingIdentity is returned when a decoded payload carries no
	// addressing identifier (bot token, phone_number_id, page id), so no
	// integration lookup is possible.
	ErrMissingIdentity = errors.New("channel: missing addressing identity")
)

// Inbound is one customer message extracted from a webhook payload.
type Inbound struct {
	// ExternalUserID identifies the sending end-user on the provider side.
	ExternalUserID string
	// Text is the plain-text message content.
	Text string
}

// Payload is the channel-neutral result of parsing one webhook body: the
// identifier that addresses a tenant integration plus zero or more inbound
// messages. WhatsApp and Instagram batch messages per request; Telegram
// carries at most one.
type Payload struct {
	// Identity addresses the integration: the bot token embedded in a
	// Telegram update, the phone_number_id for WhatsApp, or the page id
	// for Instagram.
	Identity string
	// Messages are the customer messages found in the payload. May be
	// empty (delivery receipts, non-text updates) in which case the
	// pipeline acknowledges without further work.
	Messages []Inbound
}

// Parse decodes a raw webhook body for the given channel into one or more
// payload groups. Each group is resolved to an integration independently;
// Telegram and WhatsApp always yield at most one group, Instagram yields
// one per entry (pages can be batched in a single delivery).
func Parse(ch domain.Channel, body []byte) ([]Payload, error) {
	switch ch {
	case domain.ChannelTelegram:
		return parseTelegram(body)
	case domain.ChannelWhatsApp:
		return parseWhatsApp(body)
	case domain.ChannelInstagram:
		return parseInstagram(body)
	default:
		return nil, ErrUnknownChannel
	}
}
