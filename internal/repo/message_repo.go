// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
//
// Messages are append-only: there is deliberately no update or delete here.
// CountAIMessages is the quota gauge: AI usage is derived from stored rows
// rather than a counter column, so it can never drift from the message log.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// CreateMessage appends a message to a conversation. sender is one of
// domain.SenderCustomer, domain.SenderHuman, or domain.SenderAI.
func CreateMessage(ctx context.Context, db *gorm.DB, conversationID, sender, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         sender,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	return m, db.WithContext(ctx).Create(m).Error
}

// ListMessages returns a conversation's messages in insertion order
// (CreatedAt ASC, ID ASC). limit <= 0 means no limit.
func ListMessages(ctx context.Context, db *gorm.DB, conversationID string, limit int) ([]domain.Message, error) {
	var out []domain.Message
	q := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountMessages returns the number of messages in a conversation. Uses a raw
// COUNT so a missing table surfaces as an error.
func CountMessages(ctx context.Context, db *gorm.DB, conversationID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM messages WHERE conversation_id = ?", conversationID).
		Scan(&total).Error
	return total, err
}

// CountAIMessages returns how many AI replies a tenant has accumulated across
// all of its conversations. The responder compares this against the plan's
// max_ai_messages before generating a reply.
func CountAIMessages(ctx context.Context, db *gorm.DB, tenantID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.tenant_id = ? AND messages.sender = ?", tenantID, domain.SenderAI).
		Count(&total).Error
	return total, err
}

// ListRecentMessagesByTenant returns the tenant's newest messages across all
// of its conversations, newest first. Feeds the per-query transcript index;
// limit bounds how much history the index sees.
func ListRecentMessagesByTenant(ctx context.Context, db *gorm.DB, tenantID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 1000
	}
	var out []domain.Message
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.tenant_id = ?", tenantID).
		Order("messages.created_at DESC, messages.id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetMessage fetches a message by ID.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
