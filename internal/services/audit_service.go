// Package services – AuditService
//
// Read views over the pipeline's write-only outputs: notifications and the
// tenant audit trail.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
)

// ErrNotificationNotFound indicates the notification does not exist for the
// tenant.
var ErrNotificationNotFound = errors.New("notification not found")

// AuditService serves tenant notifications and system logs.
type AuditService struct {
	DB *gorm.DB
}

// NewAuditService constructs an AuditService.
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Notifications returns a page of the tenant's notifications, newest first.
func (s *AuditService) Notifications(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	total, err := repo.CountNotifications(ctx, s.DB, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Notification{}, 0, nil
	}
	items, err := repo.ListNotificationsPage(ctx, s.DB, tenantID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// MarkRead flags one of the tenant's notifications as read.
func (s *AuditService) MarkRead(ctx context.Context, tenantID, notificationID string) error {
	if err := repo.MarkNotificationRead(ctx, s.DB, notificationID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// Logs returns a page of the tenant's audit trail, newest first, optionally
// filtered by category ("" means all).
func (s *AuditService) Logs(ctx context.Context, tenantID, category string, page, pageSize int) ([]domain.SystemLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	total, err := repo.CountSystemLogs(ctx, s.DB, tenantID, category)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.SystemLog{}, 0, nil
	}
	items, err := repo.ListSystemLogsPage(ctx, s.DB, tenantID, category, (page-1)*pageSize, pageSize)
	return items, total, err
}
