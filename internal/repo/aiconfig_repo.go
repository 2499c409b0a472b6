// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the AIConfig
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// GetAIConfig fetches a tenant's assistant configuration, or ErrNotFound when
// the tenant never configured one. A missing config is a normal state: the
// responder falls back to a canned acknowledgement.
func GetAIConfig(ctx context.Context, db *gorm.DB, tenantID string) (*domain.AIConfig, error) {
	var c domain.AIConfig
	if err := db.WithContext(ctx).First(&c, "tenant_id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertAIConfig creates or updates the tenant's assistant configuration.
// apiKeyEncrypted must already be vault-encrypted by the caller; pass "" to
// keep using the platform default key.
func UpsertAIConfig(ctx context.Context, db *gorm.DB, tenantID, apiKeyEncrypted, basePrompt string, temperature float64, language string) (*domain.AIConfig, error) {
	now := time.Now().UTC()

	var existing domain.AIConfig
	err := db.WithContext(ctx).First(&existing, "tenant_id = ?", tenantID).Error
	switch {
	case err == nil:
		existing.APIKeyEncrypted = apiKeyEncrypted
		existing.BasePrompt = basePrompt
		existing.Temperature = temperature
		existing.Language = language
		existing.UpdatedAt = now
		if err := db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		c := &domain.AIConfig{
			ID:              uuid.NewString(),
			TenantID:        tenantID,
			APIKeyEncrypted: apiKeyEncrypted,
			BasePrompt:      basePrompt,
			Temperature:     temperature,
			Language:        language,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := db.WithContext(ctx).Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, err
	}
}
