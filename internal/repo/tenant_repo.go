// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tenant model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateTenant inserts a new tenant subscribed to planID. The tenant ID is a
// randomly generated UUID (string), and timestamps are set to UTC.
func CreateTenant(ctx context.Context, db *gorm.DB, name, email, planID string) (*domain.Tenant, error) {
	now := time.Now().UTC()
	t := &domain.Tenant{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		PlanID:    planID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTenant fetches a tenant by its ID, or ErrNotFound if missing.
func GetTenant(ctx context.Context, db *gorm.DB, id string) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
