// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Integration
// model.
//
// The unique (tenant_id, channel) index guarantees at most one integration
// row per channel for a tenant, so UpsertIntegration is the only write path
// needed for connecting credentials.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// UpsertIntegration creates or replaces the tenant's integration for the
// given channel. config is the channel-specific JSON blob with its secret
// fields already encrypted by the caller. The row ends up "connected".
func UpsertIntegration(ctx context.Context, db *gorm.DB, tenantID string, ch domain.Channel, config string) (*domain.Integration, error) {
	now := time.Now().UTC()

	var existing domain.Integration
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND channel = ?", tenantID, ch).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Status = domain.IntegrationConnected
		existing.Config = config
		existing.UpdatedAt = now
		if err := db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		in := &domain.Integration{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			Channel:   ch,
			Status:    domain.IntegrationConnected,
			Config:    config,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.WithContext(ctx).Create(in).Error; err != nil {
			return nil, err
		}
		return in, nil
	default:
		return nil, err
	}
}

// GetIntegration fetches a tenant's integration for one channel, or
// ErrNotFound if the tenant never connected that channel.
func GetIntegration(ctx context.Context, db *gorm.DB, tenantID string, ch domain.Channel) (*domain.Integration, error) {
	var in domain.Integration
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND channel = ?", tenantID, ch).
		First(&in).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// ListConnectedIntegrations returns every connected integration for the given
// channel, across all tenants. The webhook resolver scans this set to match
// an inbound event to its tenant.
func ListConnectedIntegrations(ctx context.Context, db *gorm.DB, ch domain.Channel) ([]domain.Integration, error) {
	var out []domain.Integration
	err := db.WithContext(ctx).
		Where("channel = ? AND status = ?", ch, domain.IntegrationConnected).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListIntegrations returns all integration rows for a tenant, one per
// connected or previously connected channel.
func ListIntegrations(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.Integration, error) {
	var out []domain.Integration
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("channel asc").
		Find(&out).Error
	return out, err
}

// DisconnectIntegration flips a tenant's channel integration to
// "disconnected" and clears its stored credentials. Returns ErrNotFound if
// the tenant has no row for that channel.
func DisconnectIntegration(ctx context.Context, db *gorm.DB, tenantID string, ch domain.Channel) error {
	res := db.WithContext(ctx).
		Model(&domain.Integration{}).
		Where("tenant_id = ? AND channel = ?", tenantID, ch).
		Updates(map[string]any{
			"status":     domain.IntegrationDisconnected,
			"config":     "{}",
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
