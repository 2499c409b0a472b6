// Package services – ConversationService
//
// This file implements ConversationService, the operator-facing side of
// conversations: listing threads, reading transcripts, taking a thread over
// from the bot (assume), handing it back (release), and sending manual
// replies. All operations are tenant-scoped; a conversation id from another
// tenant behaves as if it did not exist.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rs/zerolog/log"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/outbound"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/search"
)

// ConversationService provides operator actions on conversations.
type ConversationService struct {
	DB           *gorm.DB
	Integrations *IntegrationService
	Deliverer    outbound.Deliverer

	// DeliveryTimeout bounds the fire-and-forget provider send.
	DeliveryTimeout time.Duration
}

// NewConversationService constructs a ConversationService.
func NewConversationService(db *gorm.DB, integrations *IntegrationService, d outbound.Deliverer, deliveryTimeout time.Duration) *ConversationService {
	if deliveryTimeout <= 0 {
		deliveryTimeout = 15 * time.Second
	}
	return &ConversationService{
		DB:              db,
		Integrations:    integrations,
		Deliverer:       d,
		DeliveryTimeout: deliveryTimeout,
	}
}

// ListPage returns a page of the tenant's conversations, most recently
// active first, along with the total count.
func (s *ConversationService) ListPage(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Conversation, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountConversations(ctx, s.DB, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Conversation{}, 0, nil
	}
	items, err := repo.ListConversationsPage(ctx, s.DB, tenantID, offset, pageSize)
	return items, total, err
}

// Get returns a conversation with its full transcript.
func (s *ConversationService) Get(ctx context.Context, tenantID, conversationID string) (*domain.Conversation, []domain.Message, error) {
	conv, err := repo.GetConversation(ctx, s.DB, conversationID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrConversationNotFound
		}
		return nil, nil, err
	}
	msgs, err := repo.ListMessages(ctx, s.DB, conversationID, 0)
	if err != nil {
		return nil, nil, err
	}
	return conv, msgs, nil
}

// Assume puts the conversation under the given operator: status moves to
// "human" and the pipeline stops generating AI replies for it.
func (s *ConversationService) Assume(ctx context.Context, tenantID, conversationID, operatorID string) error {
	return s.setStatus(ctx, tenantID, conversationID, domain.ConversationHuman, &operatorID, "assume", "Conversa assumida por operador")
}

// Release hands the conversation back to the bot.
func (s *ConversationService) Release(ctx context.Context, tenantID, conversationID string) error {
	return s.setStatus(ctx, tenantID, conversationID, domain.ConversationBot, nil, "bot_mode", "Conversa retornou ao bot")
}

func (s *ConversationService) setStatus(ctx context.Context, tenantID, conversationID, status string, operatorID *string, action, details string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.SetConversationStatus(ctx, tx, conversationID, tenantID, status, operatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConversationNotFound
			}
			return err
		}
		_, err := repo.CreateSystemLog(ctx, tx, tenantID, "info", "conversation", action, details)
		return err
	})
}

// searchWindow caps how much recent history the per-query transcript index
// sees. Older messages fall out of search before they fall out of storage.
const searchWindow = 2000

// Search ranks the tenant's recent messages against the query and returns
// the best hits. The index is rebuilt per call from a bounded window of
// recent history, which keeps results fresh without a live index.
func (s *ConversationService) Search(ctx context.Context, tenantID, query string, limit int) ([]search.Result, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	msgs, err := repo.ListRecentMessagesByTenant(ctx, s.DB, tenantID, searchWindow)
	if err != nil {
		return nil, err
	}
	docs := make([]search.Document, 0, len(msgs))
	for _, m := range msgs {
		docs = append(docs, search.Document{
			MessageID:      m.ID,
			ConversationID: m.ConversationID,
			Sender:         m.Sender,
			Content:        m.Content,
		})
	}
	return search.New(docs).TopK(query, limit), nil
}

// SendHuman stores an operator-authored message on the conversation and
// delivers it to the external user over the conversation's channel. The
// store commits first; delivery is fire-and-forget, so a provider outage
// never loses the message history.
func (s *ConversationService) SendHuman(ctx context.Context, tenantID, conversationID, operatorID, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "SendHuman",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("conversation.id", conversationID),
		),
	)
	defer span.End()

	conv, err := repo.GetConversation(ctx, s.DB, conversationID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	var msg *domain.Message
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.CreateMessage(ctx, tx, conv.ID, domain.SenderHuman, text)
		if err != nil {
			return err
		}
		msg = m
		if err := repo.TouchConversation(ctx, tx, conv.ID); err != nil {
			return err
		}
		_, err = repo.CreateSystemLog(ctx, tx, tenantID, "info", "message", "message_sent",
			"Mensagem enviada por "+operatorID+" na conversa "+conv.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(conv, text)
	return msg, nil
}

// deliver pushes text to the conversation's external user in the background.
// Failures are logged; the stored message stands either way.
func (s *ConversationService) deliver(conv *domain.Conversation, text string) {
	if s.Deliverer == nil {
		return
	}
	integration, err := repo.GetIntegration(context.Background(), s.DB, conv.TenantID, conv.Channel)
	if err != nil {
		log.Warn().Err(err).
			Str("tenant_id", conv.TenantID).
			Str("channel", string(conv.Channel)).
			Msg("delivery skipped: no integration")
		return
	}
	cfg, err := s.Integrations.Config(integration)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", conv.TenantID).Msg("delivery skipped: bad integration config")
		return
	}
	creds, err := s.Integrations.DeliveryCredentials(conv.Channel, cfg)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", conv.TenantID).Msg("delivery skipped: credential decrypt failed")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.DeliveryTimeout)
		defer cancel()
		if err := s.Deliverer.Send(ctx, conv.Channel, creds, conv.ExternalUserID, text); err != nil {
			log.Warn().Err(err).
				Str("tenant_id", conv.TenantID).
				Str("channel", string(conv.Channel)).
				Str("conversation_id", conv.ID).
				Msg("outbound delivery failed")
		}
	}()
}
