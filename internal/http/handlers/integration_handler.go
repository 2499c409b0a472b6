// Integration HTTP handlers.
//
// This file exposes the operator endpoints for channel credentials:
//   - POST   /integrations/telegram    (connect / update)
//   - POST   /integrations/whatsapp    (connect / update)
//   - POST   /integrations/instagram   (connect / update)
//   - DELETE /integrations/{channel}   (disconnect, wipes credentials)
//   - GET    /integrations/status      (per-channel connected map)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. Secrets submitted
// here are encrypted by the service layer before they reach the store and
// are never echoed back.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/services"
)

// IntegrationService defines the channel-credential operations consumed by
// HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type IntegrationService interface {
	// SaveTelegram connects or updates the tenant's Telegram bot.
	SaveTelegram(ctx context.Context, tenantID, botToken, secretToken string) (*domain.Integration, error)
	// SaveWhatsApp connects or updates the tenant's WhatsApp number.
	SaveWhatsApp(ctx context.Context, tenantID, accessToken, phoneNumberID, verifyToken, businessAccountID string) (*domain.Integration, error)
	// SaveInstagram connects or updates the tenant's Instagram page.
	SaveInstagram(ctx context.Context, tenantID, accessToken, pageID string) (*domain.Integration, error)
	// Disconnect flips the integration to disconnected and wipes its config.
	Disconnect(ctx context.Context, tenantID string, ch domain.Channel) error
	// Status reports, per channel, whether a connected integration exists.
	Status(ctx context.Context, tenantID string) (map[domain.Channel]bool, error)
}

// tenantID extracts the operator's tenant from the X-Tenant-ID header, set by
// the fronting auth layer. Operator endpoints refuse requests without it.
func tenantID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
	if id == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing X-Tenant-ID header")
		return "", false
	}
	return id, true
}

//
// DTOs
//

// ConnectTelegramRequest is the JSON payload for connecting a Telegram bot.
type ConnectTelegramRequest struct {
	// BotToken is the BotFather token; stored encrypted.
	BotToken string `json:"bot_token" binding:"required,min=1" example:"123456:ABC-DEF"`
	// SecretToken optionally enables header verification on updates.
	SecretToken string `json:"secret_token" example:"wh-secret"`
}

// ConnectWhatsAppRequest is the JSON payload for connecting a WhatsApp number.
type ConnectWhatsAppRequest struct {
	// AccessToken is the Cloud API token; stored encrypted.
	AccessToken string `json:"access_token" binding:"required,min=1"`
	// PhoneNumberID identifies the sending number on inbound events.
	PhoneNumberID string `json:"phone_number_id" binding:"required,min=1" example:"5511999"`
	// VerifyToken answers the Meta subscription handshake.
	VerifyToken string `json:"verify_token" example:"verify-123"`
	// BusinessAccountID is kept for reference only.
	BusinessAccountID string `json:"business_account_id"`
}

// ConnectInstagramRequest is the JSON payload for connecting an Instagram page.
type ConnectInstagramRequest struct {
	// AccessToken is the page token; stored encrypted.
	AccessToken string `json:"access_token" binding:"required,min=1"`
	// PageID identifies the page on inbound events.
	PageID string `json:"page_id" binding:"required,min=1" example:"17841400000000000"`
}

//
// Handlers
//

// ConnectTelegram godoc
// @ID          connectTelegram
// @Summary     Connect a Telegram bot
// @Description Upserts the tenant's Telegram integration. The bot token is encrypted at rest.
// @Tags        Integrations
// @Accept      json
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       body         body    handlers.ConnectTelegramRequest  true  "Credentials"
//
// @Success     200  {object}  domain.Integration
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /integrations/telegram [post]
func (h *Handlers) ConnectTelegram(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	var req ConnectTelegramRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BotToken) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "bot_token required")
		return
	}
	in, err := h.integrationSvc.SaveTelegram(c.Request.Context(), tid, strings.TrimSpace(req.BotToken), strings.TrimSpace(req.SecretToken))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, in)
}

// ConnectWhatsApp godoc
// @ID          connectWhatsApp
// @Summary     Connect a WhatsApp number
// @Description Upserts the tenant's WhatsApp integration. The access token is encrypted at rest; phone_number_id stays queryable for inbound resolution.
// @Tags        Integrations
// @Accept      json
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       body         body    handlers.ConnectWhatsAppRequest  true  "Credentials"
//
// @Success     200  {object}  domain.Integration
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /integrations/whatsapp [post]
func (h *Handlers) ConnectWhatsApp(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	var req ConnectWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.PhoneNumberID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "access_token and phone_number_id required")
		return
	}
	in, err := h.integrationSvc.SaveWhatsApp(c.Request.Context(), tid,
		strings.TrimSpace(req.AccessToken),
		strings.TrimSpace(req.PhoneNumberID),
		strings.TrimSpace(req.VerifyToken),
		strings.TrimSpace(req.BusinessAccountID),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, in)
}

// ConnectInstagram godoc
// @ID          connectInstagram
// @Summary     Connect an Instagram page
// @Description Upserts the tenant's Instagram integration. The access token is encrypted at rest; page_id stays queryable for inbound resolution.
// @Tags        Integrations
// @Accept      json
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       body         body    handlers.ConnectInstagramRequest  true  "Credentials"
//
// @Success     200  {object}  domain.Integration
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /integrations/instagram [post]
func (h *Handlers) ConnectInstagram(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	var req ConnectInstagramRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.PageID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "access_token and page_id required")
		return
	}
	in, err := h.integrationSvc.SaveInstagram(c.Request.Context(), tid,
		strings.TrimSpace(req.AccessToken),
		strings.TrimSpace(req.PageID),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, in)
}

// DisconnectIntegration godoc
// @ID          disconnectIntegration
// @Summary     Disconnect a channel
// @Description Flips the integration to disconnected and wipes its stored credentials. Inbound events for the channel stop resolving immediately.
// @Tags        Integrations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       channel      path    string  true  "telegram | whatsapp | instagram"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Unknown channel"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Integration not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /integrations/{channel} [delete]
func (h *Handlers) DisconnectIntegration(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	ch := domain.Channel(c.Param("channel"))
	err := h.integrationSvc.Disconnect(c.Request.Context(), tid, ch)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrUnsupportedChannel):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown channel")
	case errors.Is(err, services.ErrIntegrationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "integration not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// IntegrationStatus godoc
// @ID          integrationStatus
// @Summary     Per-channel connection status
// @Description Returns a map of channel to connected flag. Channels never connected report false.
// @Tags        Integrations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
//
// @Success     200  {object}  map[string]bool
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /integrations/status [get]
func (h *Handlers) IntegrationStatus(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	status, err := h.integrationSvc.Status(c.Request.Context(), tid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, status)
}
