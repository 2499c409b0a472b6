// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Notification and SystemLog models, the append-only side-effect records
// written by the inbound pipeline.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

// CreateNotification appends a tenant-scoped notification. userID is nil for
// broadcast notifications visible to every operator of the tenant.
func CreateNotification(ctx context.Context, db *gorm.DB, tenantID string, userID *string, typ, content string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		UserID:    userID,
		Type:      typ,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return n, db.WithContext(ctx).Create(n).Error
}

// ListNotificationsPage returns a tenant's notifications, newest first.
func ListNotificationsPage(ctx context.Context, db *gorm.DB, tenantID string, offset, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountNotifications returns the total number of notifications for a tenant.
func CountNotifications(ctx context.Context, db *gorm.DB, tenantID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error
	return total, err
}

// MarkNotificationRead flags a single notification as read. Returns
// ErrNotFound when the row does not exist for that tenant.
func MarkNotificationRead(ctx context.Context, db *gorm.DB, id, tenantID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSystemLog appends an audit record for the tenant. level defaults to
// "info" when empty.
func CreateSystemLog(ctx context.Context, db *gorm.DB, tenantID, level, category, action, details string) (*domain.SystemLog, error) {
	if level == "" {
		level = "info"
	}
	l := &domain.SystemLog{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Level:     level,
		Category:  category,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	return l, db.WithContext(ctx).Create(l).Error
}

// ListSystemLogsPage returns a tenant's audit records, newest first,
// optionally filtered by category ("" means all).
func ListSystemLogsPage(ctx context.Context, db *gorm.DB, tenantID, category string, offset, limit int) ([]domain.SystemLog, error) {
	q := db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.SystemLog
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountSystemLogs returns the total audit records for a tenant, optionally
// filtered by category.
func CountSystemLogs(ctx context.Context, db *gorm.DB, tenantID, category string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.SystemLog{}).Where("tenant_id = ?", tenantID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}
