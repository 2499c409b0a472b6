// Package services – Pipeline
//
// This file implements the inbound webhook pipeline: verify the event,
// parse it, resolve the owning tenant's integration, route each message to
// its conversation, persist it, and (while the conversation is bot-owned)
// generate and persist the AI reply. All writes for one inbound event happen
// in a single transaction; outbound delivery of the reply runs after commit
// and never rolls anything back.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rs/zerolog/log"

	"github.com/omnidesk/go-gateway-backend/internal/channel"
	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/outbound"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
)

// Ack is the acknowledgement returned to the webhook provider. Reply is set
// only on the Telegram path, which echoes the generated answer.
type Ack struct {
	OK    bool   `json:"ok"`
	Reply string `json:"reply,omitempty"`
}

// Pipeline orchestrates inbound webhook events end to end.
type Pipeline struct {
	DB           *gorm.DB
	Integrations *IntegrationService
	Responder    *Responder
	Deliverer    outbound.Deliverer

	// MetaAppSecret signs WhatsApp and Instagram webhook bodies.
	MetaAppSecret string
	// DeliveryTimeout bounds the post-commit provider send.
	DeliveryTimeout time.Duration
}

// NewPipeline constructs the webhook pipeline.
func NewPipeline(db *gorm.DB, integrations *IntegrationService, responder *Responder, d outbound.Deliverer, metaAppSecret string, deliveryTimeout time.Duration) *Pipeline {
	if deliveryTimeout <= 0 {
		deliveryTimeout = 15 * time.Second
	}
	return &Pipeline{
		DB:              db,
		Integrations:    integrations,
		Responder:       responder,
		Deliverer:       d,
		MetaAppSecret:   metaAppSecret,
		DeliveryTimeout: deliveryTimeout,
	}
}

// HandleTelegram processes one Telegram update. Updates without text are
// acknowledged without touching the store. The stored shared secret, when
// configured, must match the X-Telegram-Bot-Api-Secret-Token header; a
// mismatch is audited and returned as ErrAuthentication.
func (p *Pipeline) HandleTelegram(ctx context.Context, rawBody []byte, secretHeader string) (Ack, error) {
	tr := otel.Tracer("services/Pipeline")
	ctx, span := tr.Start(ctx, "HandleTelegram")
	defer span.End()

	payloads, err := channel.Parse(domain.ChannelTelegram, rawBody)
	if err != nil {
		return Ack{}, err
	}
	payload := payloads[0]
	if len(payload.Messages) == 0 {
		// No text: acknowledge so the provider stops redelivering.
		return Ack{OK: true}, nil
	}

	integration, cfg, err := p.Integrations.ResolveTelegram(ctx, payload.Identity)
	if err != nil {
		return Ack{}, err
	}
	span.SetAttributes(attribute.String("tenant.id", integration.TenantID))

	if err := channel.VerifySharedSecret(cfg.Secret, secretHeader); err != nil {
		_ = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, lerr := repo.CreateSystemLog(ctx, tx, integration.TenantID, "warning", "webhook", "telegram_failed", "Secret token inválido")
			return lerr
		})
		return Ack{}, ErrAuthentication
	}

	var reply string
	for _, in := range payload.Messages {
		r, err := p.ingest(ctx, integration, cfg, in)
		if err != nil {
			return Ack{}, err
		}
		reply = r
	}
	return Ack{OK: true, Reply: reply}, nil
}

// VerifyWhatsAppSubscription answers the Meta webhook handshake: mode must
// be "subscribe" and hub.verify_token must match a connected WhatsApp
// integration. Returns the challenge to echo back.
func (p *Pipeline) VerifyWhatsAppSubscription(ctx context.Context, mode, verifyToken, challenge string) (string, error) {
	if mode != "subscribe" {
		return "", ErrAuthentication
	}
	ok, err := p.Integrations.MatchVerifyToken(ctx, verifyToken)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAuthentication
	}
	return challenge, nil
}

// HandleWhatsApp processes one WhatsApp Cloud API event.
func (p *Pipeline) HandleWhatsApp(ctx context.Context, rawBody []byte, signatureHeader string) (Ack, error) {
	return p.handleMeta(ctx, domain.ChannelWhatsApp, rawBody, signatureHeader)
}

// HandleInstagram processes one Instagram messaging event.
func (p *Pipeline) HandleInstagram(ctx context.Context, rawBody []byte, signatureHeader string) (Ack, error) {
	return p.handleMeta(ctx, domain.ChannelInstagram, rawBody, signatureHeader)
}

// handleMeta verifies the app-secret signature over the raw body before any
// parsing, then resolves and ingests each payload independently.
func (p *Pipeline) handleMeta(ctx context.Context, ch domain.Channel, rawBody []byte, signatureHeader string) (Ack, error) {
	tr := otel.Tracer("services/Pipeline")
	ctx, span := tr.Start(ctx, "handleMeta",
		trace.WithAttributes(attribute.String("channel", string(ch))),
	)
	defer span.End()

	if err := channel.VerifyMetaSignature(p.MetaAppSecret, rawBody, signatureHeader); err != nil {
		return Ack{}, ErrAuthentication
	}

	payloads, err := channel.Parse(ch, rawBody)
	if err != nil {
		return Ack{}, err
	}

	for _, payload := range payloads {
		var (
			integration *domain.Integration
			cfg         IntegrationConfig
		)
		switch ch {
		case domain.ChannelWhatsApp:
			integration, cfg, err = p.Integrations.ResolveWhatsApp(ctx, payload.Identity)
		case domain.ChannelInstagram:
			integration, cfg, err = p.Integrations.ResolveInstagram(ctx, payload.Identity)
		default:
			return Ack{}, ErrUnsupportedChannel
		}
		if err != nil {
			return Ack{}, err
		}
		for _, in := range payload.Messages {
			if _, err := p.ingest(ctx, integration, cfg, in); err != nil {
				return Ack{}, err
			}
		}
	}
	return Ack{OK: true}, nil
}

// ingest routes one inbound message: find-or-create the conversation,
// persist the customer message, and, if the thread is bot-owned, generate
// the reply. Only genuinely generated completions are persisted as AI
// messages with their notification; fallback acknowledgements go out to
// the user without touching the usage count. Every write shares one
// transaction; the reply delivery runs only after it commits.
func (p *Pipeline) ingest(ctx context.Context, integration *domain.Integration, cfg IntegrationConfig, in channel.Inbound) (string, error) {
	tr := otel.Tracer("services/Pipeline")
	ctx, span := tr.Start(ctx, "ingest",
		trace.WithAttributes(
			attribute.String("tenant.id", integration.TenantID),
			attribute.String("channel", string(integration.Channel)),
		),
	)
	defer span.End()

	var (
		conv  *domain.Conversation
		reply string
	)
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, created, err := repo.FindOrCreateConversation(ctx, tx, integration.TenantID, integration.Channel, in.ExternalUserID)
		if err != nil {
			return err
		}
		conv = c
		if created {
			if _, err := repo.CreateNotification(ctx, tx, integration.TenantID, nil, "new_conversation",
				"Nova conversa criada via "+string(integration.Channel)); err != nil {
				return err
			}
		} else if err := repo.TouchConversation(ctx, tx, conv.ID); err != nil {
			return err
		}

		if _, err := repo.CreateMessage(ctx, tx, conv.ID, domain.SenderCustomer, in.Text); err != nil {
			return err
		}
		if _, err := repo.CreateSystemLog(ctx, tx, integration.TenantID, "info", "message", "message_received",
			string(integration.Channel)+" msg em conversa "+conv.ID); err != nil {
			return err
		}

		// Human-owned threads store the inbound message but never answer.
		if conv.Status != domain.ConversationBot {
			return nil
		}

		var generated bool
		reply, generated = p.Responder.Reply(ctx, tx, integration.TenantID, in.Text)
		// Canned fallbacks are still delivered but never stored as AI
		// output: a quota notice counted as usage would lock the tenant
		// out for good.
		if !generated {
			return nil
		}
		if _, err := repo.CreateMessage(ctx, tx, conv.ID, domain.SenderAI, reply); err != nil {
			return err
		}
		_, err = repo.CreateNotification(ctx, tx, integration.TenantID, nil, "ai_response", "IA respondeu uma mensagem")
		return err
	})
	if err != nil {
		return "", err
	}

	if reply != "" {
		p.deliver(integration, cfg, conv, reply)
	}
	return reply, nil
}

// deliver pushes the AI reply to the external user after the transaction has
// committed. Failures are logged and swallowed: the provider-side send is
// best effort, the stored history is the source of truth.
func (p *Pipeline) deliver(integration *domain.Integration, cfg IntegrationConfig, conv *domain.Conversation, text string) {
	if p.Deliverer == nil {
		return
	}
	creds, err := p.Integrations.DeliveryCredentials(integration.Channel, cfg)
	if err != nil {
		log.Warn().Err(err).
			Str("tenant_id", integration.TenantID).
			Str("channel", string(integration.Channel)).
			Msg("delivery skipped: credential decrypt failed")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.DeliveryTimeout)
		defer cancel()
		if err := p.Deliverer.Send(ctx, integration.Channel, creds, conv.ExternalUserID, text); err != nil {
			log.Warn().Err(err).
				Str("tenant_id", integration.TenantID).
				Str("channel", string(integration.Channel)).
				Str("conversation_id", conv.ID).
				Msg("outbound delivery failed")
		}
	}()
}
