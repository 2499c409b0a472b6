// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Conversation model.
//
// FindOrCreateConversation is the pipeline's routing primitive: the unique
// (tenant_id, channel, external_user_id) index makes it race-safe under
// concurrent duplicate webhook deliveries.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// FindOrCreateConversation returns the live conversation for the
// (tenantID, ch, externalUserID) triple, creating it in "bot" status when no
// row exists. created reports whether this call inserted the row.
//
// Two concurrent calls for the same triple can both miss the initial lookup;
// the loser's insert then violates the unique index and the function re-reads
// the winner's row, so both callers converge on a single conversation.
func FindOrCreateConversation(ctx context.Context, db *gorm.DB, tenantID string, ch domain.Channel, externalUserID string) (*domain.Conversation, bool, error) {
	var conv domain.Conversation
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND channel = ? AND external_user_id = ?", tenantID, ch, externalUserID).
		First(&conv).Error
	if err == nil {
		return &conv, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	now := time.Now().UTC()
	conv = domain.Conversation{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		Channel:        ch,
		ExternalUserID: externalUserID,
		Status:         domain.ConversationBot,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if cerr := db.WithContext(ctx).Create(&conv).Error; cerr != nil {
		// Likely lost a race on the unique index; the winner's row wins.
		var again domain.Conversation
		if rerr := db.WithContext(ctx).
			Where("tenant_id = ? AND channel = ? AND external_user_id = ?", tenantID, ch, externalUserID).
			First(&again).Error; rerr == nil {
			return &again, false, nil
		}
		return nil, false, cerr
	}
	return &conv, true, nil
}

// GetConversation fetches a conversation by ID scoped to its tenant, or
// ErrNotFound if missing.
func GetConversation(ctx context.Context, db *gorm.DB, id, tenantID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// CountConversations returns the total number of conversations for a tenant.
func CountConversations(ctx context.Context, db *gorm.DB, tenantID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error
	return total, err
}

// ListConversationsPage returns a paginated slice of a tenant's
// conversations, most recently updated first.
func ListConversationsPage(ctx context.Context, db *gorm.DB, tenantID string, offset, limit int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetConversationStatus moves a conversation between "bot" and "human" and
// records the operator owning it (nil releases it). Returns ErrNotFound when
// the conversation does not exist for that tenant.
func SetConversationStatus(ctx context.Context, db *gorm.DB, id, tenantID, status string, assignedUserID *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(map[string]any{
			"status":           status,
			"assigned_user_id": assignedUserID,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TouchConversation bumps updated_at so list views order active threads
// first. Missing rows are ignored.
func TouchConversation(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
