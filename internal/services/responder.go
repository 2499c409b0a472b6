// Package services – Responder
//
// This file implements the quota-gated AI responder. Reply generates the
// assistant text for an inbound customer message, degrading through fixed
// fallback tiers instead of erroring: a webhook acknowledgement must never
// fail because the completion backend is unconfigured, out of quota, or down.
//
// Tier order:
//  1. tenant has no AI config            -> canned acknowledgement
//  2. no API key (tenant's or platform)  -> processing acknowledgement
//  3. plan quota exhausted               -> limit notice (+ plan_limit notification)
//  4. backend error                      -> processing acknowledgement
//  5. timeout or empty completion        -> follow-up prompt
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/omnidesk/go-gateway-backend/internal/ai"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

// Fallback replies, in the product's default locale.
const (
	replyNoConfig   = "Obrigado pela mensagem! Em breve retornaremos."
	replyProcessing = "Recebemos sua mensagem e estamos processando seu atendimento."
	replyQuota      = "Seu plano atingiu o limite de IA. Contate o administrador."
	replyFollowUp   = "Posso ajudar em mais alguma coisa?"
)

// Responder generates AI replies for inbound customer messages.
type Responder struct {
	AI    ai.Client
	Vault *vault.Vault

	// DefaultAPIKey is the platform-wide completion key used when a tenant
	// has not configured its own. Empty disables AI for such tenants.
	DefaultAPIKey string
}

// NewResponder constructs a Responder.
func NewResponder(client ai.Client, v *vault.Vault, defaultAPIKey string) *Responder {
	return &Responder{AI: client, Vault: v, DefaultAPIKey: defaultAPIKey}
}

// Reply produces the assistant text for incomingText on behalf of tenantID.
// It runs against the given handle so the pipeline can call it inside the
// inbound transaction: the quota read and the caller's subsequent AI message
// write then share one transaction.
//
// The quota check is a soft limit: two concurrent events that both read
// usage just under the cap can each produce a reply, overshooting by at most
// the number of in-flight events. Usage is derived from stored AI messages,
// so the gauge self-corrects on the next event.
//
// Reply never returns an error; failures degrade to a fallback string. The
// second return reports whether the backend actually produced the text: it
// is false for every fallback tier, so callers can tell a generated answer
// apart from a canned acknowledgement and keep the latter out of the
// tenant's AI usage count.
func (r *Responder) Reply(ctx context.Context, db *gorm.DB, tenantID, incomingText string) (string, bool) {
	tr := otel.Tracer("services/Responder")
	ctx, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	cfg, err := repo.GetAIConfig(ctx, db, tenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetAttributes(attribute.String("fallback", "config_error"))
		}
		return replyNoConfig, false
	}

	key := r.DefaultAPIKey
	if cfg.APIKeyEncrypted != "" {
		if plain, err := r.Vault.Decrypt(cfg.APIKeyEncrypted); err == nil {
			key = plain
		}
	}
	if key == "" || r.AI == nil {
		span.SetAttributes(attribute.String("fallback", "no_key"))
		return replyProcessing, false
	}

	plan, err := repo.GetPlanForTenant(ctx, db, tenantID)
	if err != nil {
		span.SetAttributes(attribute.String("fallback", "plan_error"))
		return replyProcessing, false
	}
	usage, err := repo.CountAIMessages(ctx, db, tenantID)
	if err != nil {
		span.SetAttributes(attribute.String("fallback", "usage_error"))
		return replyProcessing, false
	}
	span.SetAttributes(attribute.Int64("ai.usage", usage), attribute.Int("ai.limit", plan.MaxAIMessages))
	if usage >= int64(plan.MaxAIMessages) {
		_, _ = repo.CreateNotification(ctx, db, tenantID, nil, "plan_limit", "Limite de mensagens IA atingido para o plano atual.")
		span.SetAttributes(attribute.String("fallback", "quota"))
		return replyQuota, false
	}

	out, err := r.AI.Complete(ctx, key, cfg.BasePrompt, incomingText, cfg.Temperature)
	if err != nil {
		_, _ = repo.CreateSystemLog(ctx, db, tenantID, "warning", "ai", "ai_failed", err.Error())
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			// The backend did not answer in time; prompt the customer to
			// continue instead of claiming the request is still in flight.
			span.SetAttributes(attribute.String("fallback", "timeout"))
			return replyFollowUp, false
		}
		span.SetAttributes(attribute.String("fallback", "backend_error"))
		return replyProcessing, false
	}

	_, _ = repo.CreateSystemLog(ctx, db, tenantID, "info", "ai", "ai_triggered", "Resposta gerada pelo provedor de IA")
	if out == "" {
		return replyFollowUp, false
	}
	return out, true
}
