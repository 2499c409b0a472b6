// Notification and audit-trail HTTP handlers.
//
//   - GET  /notifications            (list, paginated, newest first)
//   - POST /notifications/{id}/read  (mark one as read)
//   - GET  /logs                     (audit trail, optional category filter)
//
// These are read views over the write-only outputs of the inbound pipeline.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/services"
)

// ListNotificationsResponse wraps a page of notifications.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Pagination    Pagination            `json:"pagination"`
}

// ListLogsResponse wraps a page of audit-trail entries.
type ListLogsResponse struct {
	Logs       []domain.SystemLog `json:"logs"`
	Pagination Pagination         `json:"pagination"`
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     List notifications (paginated)
// @Description Returns a page of the tenant's notifications, newest first.
// @Tags        Audit
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       page         query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size    query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListNotificationsResponse
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.auditSvc.Notifications(c.Request.Context(), tid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListNotificationsResponse{
		Notifications: items,
		Pagination:    paginate(page, pageSize, total),
	})
}

// MarkNotificationRead godoc
// @ID          markNotificationRead
// @Summary     Mark a notification as read
// @Tags        Audit
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       id           path    string  true  "Notification ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Notification not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id}/read [post]
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	if err := h.auditSvc.MarkRead(c.Request.Context(), tid, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "notification not found")
		} else {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// ListLogs godoc
// @ID          listLogs
// @Summary     List audit-trail entries (paginated)
// @Description Returns a page of the tenant's system logs, newest first, optionally filtered by category (webhook, message, ai, integration, conversation, config).
// @Tags        Audit
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       category     query   string  false "Filter by category"
// @Param       page         query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size    query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListLogsResponse
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /logs [get]
func (h *Handlers) ListLogs(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.auditSvc.Logs(c.Request.Context(), tid, c.Query("category"), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListLogsResponse{
		Logs:       items,
		Pagination: paginate(page, pageSize, total),
	})
}
