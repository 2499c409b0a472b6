// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Plan model
// and the startup seed of the built-in plan tiers.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// SeedPlans inserts the built-in plan tiers when the plans table is empty.
// Running it against an already seeded database is a no-op, so it is safe
// to call on every startup.
func SeedPlans(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	plans := []domain.Plan{
		{ID: uuid.NewString(), Name: "starter", MaxUsers: 3, MaxChannels: 1, MaxAIMessages: 300, MaxStorageMB: 200, CreatedAt: now},
		{ID: uuid.NewString(), Name: "growth", MaxUsers: 15, MaxChannels: 3, MaxAIMessages: 5000, MaxStorageMB: 2000, CreatedAt: now},
		{ID: uuid.NewString(), Name: "enterprise", MaxUsers: 200, MaxChannels: 10, MaxAIMessages: 100000, MaxStorageMB: 15000, CreatedAt: now},
	}
	return db.WithContext(ctx).Create(&plans).Error
}

// GetPlan fetches a plan by its ID. If the record does not exist, it returns
// gorm.ErrRecordNotFound.
func GetPlan(ctx context.Context, db *gorm.DB, id string) (*domain.Plan, error) {
	var p domain.Plan
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlanByName fetches a plan by its unique name (e.g. "starter").
func GetPlanByName(ctx context.Context, db *gorm.DB, name string) (*domain.Plan, error) {
	var p domain.Plan
	if err := db.WithContext(ctx).First(&p, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlanForTenant fetches the plan the given tenant is subscribed to.
func GetPlanForTenant(ctx context.Context, db *gorm.DB, tenantID string) (*domain.Plan, error) {
	var t domain.Tenant
	if err := db.WithContext(ctx).First(&t, "id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return GetPlan(ctx, db, t.PlanID)
}
