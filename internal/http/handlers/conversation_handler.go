// Conversation HTTP handlers.
//
// This file exposes the operator endpoints for conversations:
//   - GET  /conversations                 (list, paginated)
//   - GET  /conversations/{id}           (conversation + transcript)
//   - POST /conversations/{id}/assume    (operator takes over, bot mutes)
//   - POST /conversations/{id}/release   (hand back to the bot)
//   - POST /conversations/{id}/messages  (operator sends a message)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/search"
	"github.com/omnidesk/go-gateway-backend/internal/services"
	"github.com/omnidesk/go-gateway-backend/internal/utils"
)

// ConversationService defines the operator-side conversation operations
// consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type ConversationService interface {
	// ListPage returns a page of the tenant's conversations and the total.
	ListPage(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Conversation, int64, error)
	// Get returns a conversation with its full transcript.
	Get(ctx context.Context, tenantID, conversationID string) (*domain.Conversation, []domain.Message, error)
	// Assume moves the conversation under the given operator.
	Assume(ctx context.Context, tenantID, conversationID, operatorID string) error
	// Release hands the conversation back to the bot.
	Release(ctx context.Context, tenantID, conversationID string) error
	// SendHuman stores and delivers an operator-authored message.
	SendHuman(ctx context.Context, tenantID, conversationID, operatorID, text string) (*domain.Message, error)
	// Search ranks the tenant's recent messages against a free-text query.
	Search(ctx context.Context, tenantID, query string, limit int) ([]search.Result, error)
}

// AIConfigService defines the assistant-configuration operations consumed by
// HTTP handlers.
type AIConfigService interface {
	// Get returns the tenant's config, or defaults when never saved.
	Get(ctx context.Context, tenantID string) (*domain.AIConfig, error)
	// Save validates and upserts the config; empty apiKey keeps the stored one.
	Save(ctx context.Context, tenantID, basePrompt string, temperature float64, lang, apiKey string) (*domain.AIConfig, error)
}

// AuditService defines the notification and audit-trail read views consumed
// by HTTP handlers.
type AuditService interface {
	// Notifications returns a page of the tenant's notifications, newest first.
	Notifications(ctx context.Context, tenantID string, page, pageSize int) ([]domain.Notification, int64, error)
	// MarkRead flags one of the tenant's notifications as read.
	MarkRead(ctx context.Context, tenantID, notificationID string) error
	// Logs returns a page of the audit trail, optionally filtered by category.
	Logs(ctx context.Context, tenantID, category string, page, pageSize int) ([]domain.SystemLog, int64, error)
}

//
// Handler wiring
//

// Handlers groups the operator-facing HTTP endpoints. It depends on abstract
// service interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	integrationSvc IntegrationService
	convSvc        ConversationService
	aiCfgSvc       AIConfigService
	auditSvc       AuditService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(integrationSvc IntegrationService, convSvc ConversationService, aiCfgSvc AIConfigService, auditSvc AuditService) *Handlers {
	return &Handlers{
		integrationSvc: integrationSvc,
		convSvc:        convSvc,
		aiCfgSvc:       aiCfgSvc,
		auditSvc:       auditSvc,
	}
}

// operatorID extracts the acting operator from the X-Operator-ID header, set
// by the fronting auth layer. Falls back to "operator" so single-seat tenants
// work without one.
func operatorID(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("X-Operator-ID")); h != "" {
		return h
	}
	return "operator"
}

//
// DTOs
//

// SendMessageRequest is the JSON payload for an operator-authored message.
type SendMessageRequest struct {
	// Content is the message text. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"Um atendente vai te ajudar agora."`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListConversationsResponse wraps a page of conversations.
type ListConversationsResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
	Pagination    Pagination            `json:"pagination"`
}

// ConversationDetailResponse is a conversation with its transcript.
type ConversationDetailResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Messages     []domain.Message     `json:"messages"`
}

// SearchHit is one ranked transcript match.
type SearchHit struct {
	MessageID      string  `json:"message_id"`
	ConversationID string  `json:"conversation_id"`
	Sender         string  `json:"sender"`
	Snippet        string  `json:"snippet"`
	Score          float64 `json:"score"`
}

// SearchConversationsResponse wraps ranked transcript matches.
type SearchConversationsResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate derives the metadata block for a list response.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Handlers
//

// ListConversations godoc
// @ID          listConversations
// @Summary     List conversations (paginated)
// @Description Returns a page of the tenant's conversations, most recently active first.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       page         query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size    query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListConversationsResponse
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	page, pageSize := clampPagination(c)
	items, total, err := h.convSvc.ListPage(c.Request.Context(), tid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListConversationsResponse{
		Conversations: items,
		Pagination:    paginate(page, pageSize, total),
	})
}

// SearchConversations godoc
// @ID          searchConversations
// @Summary     Search conversation transcripts
// @Description Ranks the tenant's recent messages against a free-text query and returns the best matches with their conversations.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true   "Tenant ID"
// @Param       q            query   string  true   "Free-text query"
// @Param       limit        query   int     false  "Max hits"  minimum(1) maximum(50) default(10)
//
// @Success     200  {object}  handlers.SearchConversationsResponse
// @Failure     400  {object}  handlers.ErrorResponse "Missing query"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations/search [get]
func (h *Handlers) SearchConversations(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 10)
	results, err := h.convSvc.Search(c.Request.Context(), tid, q, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, SearchHit{
			MessageID:      r.MessageID,
			ConversationID: r.ConversationID,
			Sender:         r.Sender,
			Snippet:        r.Snippet,
			Score:          r.Score,
		})
	}
	ok(c, http.StatusOK, SearchConversationsResponse{Query: q, Hits: hits})
}

// GetConversation godoc
// @ID          getConversation
// @Summary     Conversation detail
// @Description Returns the conversation and its full transcript in insertion order.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       id           path    string  true  "Conversation ID"
//
// @Success     200  {object}  handlers.ConversationDetailResponse
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id} [get]
func (h *Handlers) GetConversation(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	conv, msgs, err := h.convSvc.Get(c.Request.Context(), tid, c.Param("id"))
	if err != nil {
		failConversation(c, err)
		return
	}
	ok(c, http.StatusOK, ConversationDetailResponse{Conversation: conv, Messages: msgs})
}

// AssumeConversation godoc
// @ID          assumeConversation
// @Summary     Take over a conversation
// @Description Moves the conversation to human status; the pipeline stops generating AI replies for it while inbound messages keep being stored.
// @Tags        Conversations
// @Produce     json
//
// @Param       X-Tenant-ID    header  string  true   "Tenant ID"
// @Param       X-Operator-ID  header  string  false  "Acting operator"
// @Param       id             path    string  true   "Conversation ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id}/assume [post]
func (h *Handlers) AssumeConversation(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	if err := h.convSvc.Assume(c.Request.Context(), tid, c.Param("id"), operatorID(c)); err != nil {
		failConversation(c, err)
		return
	}
	noContent(c)
}

// ReleaseConversation godoc
// @ID          releaseConversation
// @Summary     Hand a conversation back to the bot
// @Tags        Conversations
// @Produce     json
//
// @Param       X-Tenant-ID  header  string  true  "Tenant ID"
// @Param       id           path    string  true  "Conversation ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id}/release [post]
func (h *Handlers) ReleaseConversation(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	if err := h.convSvc.Release(c.Request.Context(), tid, c.Param("id")); err != nil {
		failConversation(c, err)
		return
	}
	noContent(c)
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send an operator message
// @Description Stores the message on the conversation and delivers it to the external user over the conversation's channel. Delivery is best effort; the stored message is returned either way.
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       X-Tenant-ID    header  string  true   "Tenant ID"
// @Param       X-Operator-ID  header  string  false  "Acting operator"
// @Param       id             path    string  true   "Conversation ID"
// @Param       body           body    handlers.SendMessageRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing tenant"
// @Failure     404  {object}  handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	tid, okTenant := tenantID(c)
	if !okTenant {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}
	msg, err := h.convSvc.SendHuman(c.Request.Context(), tid, c.Param("id"), operatorID(c), strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, services.ErrConversationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		} else {
			fail(c, http.StatusInternalServerError, ErrCodeSendFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, msg)
}

// failConversation maps conversation-service errors to HTTP responses.
func failConversation(c *gin.Context, err error) {
	if errors.Is(err, services.ErrConversationNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}
