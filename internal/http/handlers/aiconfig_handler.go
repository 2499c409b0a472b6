// Assistant-configuration HTTP handlers.
//
//   - GET /ai-config  (current config, defaults when never saved)
//   - PUT /ai-config  (validate and upsert)
//
// The API key is write-only: it is encrypted before storage and never
// serialized back out.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omnidesk/go-gateway-backend/internal/services"
)

// AIConfigRequest is the JSON payload for updating assistant configuration.
type AIConfigRequest struct {
	// BasePrompt is the system prompt prepended to every completion; empty
	// keeps the platform default.
	BasePrompt string `json:"base_prompt" example:"Você é um assistente útil e profissional."`
	// Temperature must be within [0, 2].
	Temperature float64 `json:"temperature" example:"0.3"`
	// Language is a BCP 47 tag, e.g. pt-BR.
	Language string `json:"language" example:"pt-BR"`
	// APIKey is the tenant's completion-service key; empty keeps the stored
	// one. Never echoed back.
	APIKey string `json:"api_key,omitempty"`
}

// GetAIConfig godoc
// @ID          getAIConfig
// @Summary     Current assistant configuration
// @Description Returns the tenant's assistant configuration, or the platform defaults when none was ever saved. The API key is never returned.
// @Tags        AIConfig
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
//
// @Success     200  {object}  domain.AIConfig
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /ai-config [get]
func (h *Handlers) GetAIConfig(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	cfg, err := h.aiCfgSvc.Get(c.Request.Context(), tid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, cfg)
}

// UpdateAIConfig godoc
// @ID          updateAIConfig
// @Summary     Update assistant configuration
// @Description Validates and upserts the tenant's assistant configuration. Temperature must lie in [0, 2]; language must be a valid BCP 47 tag.
// @Tags        AIConfig
// @Accept      json
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       body         body    handlers.AIConfigRequest  true  "New configuration"
//
// @Success     200  {object}  domain.AIConfig
// @Failure     400  {object}  handlers.ErrorResponse "Invalid temperature or language"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /ai-config [put]
func (h *Handlers) UpdateAIConfig(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	var req AIConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cfg, err := h.aiCfgSvc.Save(c.Request.Context(), tid,
		req.BasePrompt, req.Temperature, strings.TrimSpace(req.Language), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTemperature):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "temperature must be within [0, 2]")
		case errors.Is(err, services.ErrInvalidLanguage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "language must be a valid BCP 47 tag")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, cfg)
}
