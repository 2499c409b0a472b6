// Webhook HTTP handlers.
//
// This file exposes the provider-facing endpoints:
//   - POST /webhooks/telegram    (Telegram bot updates)
//   - GET  /webhooks/whatsapp    (Meta subscription handshake)
//   - POST /webhooks/whatsapp    (WhatsApp Cloud API events)
//   - GET  /webhooks/instagram   (Meta subscription handshake)
//   - POST /webhooks/instagram   (Instagram messaging events)
//
// Handlers are transport-thin: they hand the raw body and the relevant
// headers to the inbound pipeline and translate its outcome. Signature and
// secret failures map to 401/403; an unresolvable event maps to 404 so the
// provider stops redelivering it. Reply-generation failures never surface
// here, the pipeline degrades them to fallback replies internally.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnidesk/go-gateway-backend/internal/channel"
	"github.com/omnidesk/go-gateway-backend/internal/services"
)

// maxWebhookBody caps how much of a webhook request body is read. Providers
// send small JSON events; anything larger is hostile.
const maxWebhookBody = 1 << 20

// InboundPipeline defines the webhook processing operations consumed by the
// HTTP layer.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type InboundPipeline interface {
	// HandleTelegram processes one Telegram update against the stored
	// shared secret.
	HandleTelegram(ctx context.Context, rawBody []byte, secretHeader string) (services.Ack, error)
	// VerifyWhatsAppSubscription answers the Meta handshake, returning the
	// challenge to echo.
	VerifyWhatsAppSubscription(ctx context.Context, mode, verifyToken, challenge string) (string, error)
	// HandleWhatsApp processes one WhatsApp Cloud API event.
	HandleWhatsApp(ctx context.Context, rawBody []byte, signatureHeader string) (services.Ack, error)
	// HandleInstagram processes one Instagram messaging event.
	HandleInstagram(ctx context.Context, rawBody []byte, signatureHeader string) (services.Ack, error)
}

// WebhookHandlers groups the provider-facing endpoints.
type WebhookHandlers struct {
	pipeline InboundPipeline
}

// NewWebhooks constructs WebhookHandlers bound to the given pipeline.
func NewWebhooks(p InboundPipeline) *WebhookHandlers {
	return &WebhookHandlers{pipeline: p}
}

// readBody drains the request body up to maxWebhookBody.
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable body")
		return nil, false
	}
	return body, true
}

// failWebhook maps pipeline errors onto the provider-facing status codes.
func failWebhook(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthentication):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "verification failed")
	case errors.Is(err, services.ErrIntegrationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no integration matches this event")
	case errors.Is(err, channel.ErrMalformedPayload), errors.Is(err, channel.ErrMissingIdentity):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed event payload")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// TelegramWebhook godoc
// @ID          telegramWebhook
// @Summary     Receive a Telegram update
// @Description Ingests one Telegram bot update. The bot is identified by the update's token field; when the integration was registered with a secret, the X-Telegram-Bot-Api-Secret-Token header must match.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
//
// @Param       X-Telegram-Bot-Api-Secret-Token  header  string  false "Shared secret set at webhook registration"
//
// @Success     200  {object}  services.Ack
// @Failure     400  {object}  handlers.ErrorResponse "Malformed update"
// @Failure     401  {object}  handlers.ErrorResponse "Secret mismatch"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown bot token"
// @Router      /webhooks/telegram [post]
func (h *WebhookHandlers) TelegramWebhook(c *gin.Context) {
	body, okRead := readBody(c)
	if !okRead {
		return
	}
	ack, err := h.pipeline.HandleTelegram(c.Request.Context(), body, c.GetHeader("X-Telegram-Bot-Api-Secret-Token"))
	if err != nil {
		failWebhook(c, err)
		return
	}
	ok(c, http.StatusOK, ack)
}

// VerifyWhatsAppWebhook godoc
// @ID          verifyWhatsAppWebhook
// @Summary     Answer the WhatsApp subscription handshake
// @Description Echoes hub.challenge when hub.mode is "subscribe" and hub.verify_token matches a connected WhatsApp integration.
// @Tags        Webhooks
// @Produce     plain
//
// @Param       hub.mode          query  string  true  "Must be subscribe"
// @Param       hub.verify_token  query  string  true  "Token configured on the integration"
// @Param       hub.challenge     query  string  true  "Opaque value to echo back"
//
// @Success     200  {string}  string "The challenge"
// @Failure     401  {object}  handlers.ErrorResponse "Unknown verify token"
// @Router      /webhooks/whatsapp [get]
func (h *WebhookHandlers) VerifyWhatsAppWebhook(c *gin.Context) {
	challenge, err := h.pipeline.VerifyWhatsAppSubscription(
		c.Request.Context(),
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		failWebhook(c, err)
		return
	}
	c.String(http.StatusOK, challenge)
}

// WhatsAppWebhook godoc
// @ID          whatsAppWebhook
// @Summary     Receive a WhatsApp Cloud API event
// @Description Verifies the X-Hub-Signature-256 HMAC over the raw body, then ingests each message in the event.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
//
// @Param       X-Hub-Signature-256  header  string  true "sha256= HMAC of the raw body"
//
// @Success     200  {object}  services.Ack
// @Failure     400  {object}  handlers.ErrorResponse "Malformed event"
// @Failure     401  {object}  handlers.ErrorResponse "Signature mismatch"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown phone_number_id"
// @Router      /webhooks/whatsapp [post]
func (h *WebhookHandlers) WhatsAppWebhook(c *gin.Context) {
	body, okRead := readBody(c)
	if !okRead {
		return
	}
	ack, err := h.pipeline.HandleWhatsApp(c.Request.Context(), body, c.GetHeader("X-Hub-Signature-256"))
	if err != nil {
		failWebhook(c, err)
		return
	}
	ok(c, http.StatusOK, ack)
}

// VerifyInstagramWebhook answers the Meta handshake for the Instagram
// subscription. Instagram shares the WhatsApp verify-token pool: Meta sends
// the same app-level handshake for both products.
//
// @ID          verifyInstagramWebhook
// @Summary     Answer the Instagram subscription handshake
// @Tags        Webhooks
// @Produce     plain
// @Param       hub.mode          query  string  true  "Must be subscribe"
// @Param       hub.verify_token  query  string  true  "Token configured on the integration"
// @Param       hub.challenge     query  string  true  "Opaque value to echo back"
// @Success     200  {string}  string "The challenge"
// @Failure     401  {object}  handlers.ErrorResponse "Unknown verify token"
// @Router      /webhooks/instagram [get]
func (h *WebhookHandlers) VerifyInstagramWebhook(c *gin.Context) {
	h.VerifyWhatsAppWebhook(c)
}

// InstagramWebhook godoc
// @ID          instagramWebhook
// @Summary     Receive an Instagram messaging event
// @Description Verifies the X-Hub-Signature-256 HMAC over the raw body, then ingests each message per page entry.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
//
// @Param       X-Hub-Signature-256  header  string  true "sha256= HMAC of the raw body"
//
// @Success     200  {object}  services.Ack
// @Failure     400  {object}  handlers.ErrorResponse "Malformed event"
// @Failure     401  {object}  handlers.ErrorResponse "Signature mismatch"
// @Failure     404  {object}  handlers.ErrorResponse "Unknown page id"
// @Router      /webhooks/instagram [post]
func (h *WebhookHandlers) InstagramWebhook(c *gin.Context) {
	body, okRead := readBody(c)
	if !okRead {
		return
	}
	ack, err := h.pipeline.HandleInstagram(c.Request.Context(), body, c.GetHeader("X-Hub-Signature-256"))
	if err != nil {
		failWebhook(c, err)
		return
	}
	ok(c, http.StatusOK, ack)
}
