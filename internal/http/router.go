// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Provider webhooks and operator API mounted side by side, with rate
//     limiting applied only where throttling helps (providers retry
//     aggressively; limiting webhooks just multiplies redeliveries)
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/omnidesk/go-gateway-backend/docs"
	"github.com/omnidesk/go-gateway-backend/internal/ai"
	"github.com/omnidesk/go-gateway-backend/internal/config"
	"github.com/omnidesk/go-gateway-backend/internal/http/handlers"
	"github.com/omnidesk/go-gateway-backend/internal/http/middleware"
	"github.com/omnidesk/go-gateway-backend/internal/outbound"
	"github.com/omnidesk/go-gateway-backend/internal/services"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, then mounts the
// provider webhooks at /webhooks/* and the operator API under the configured
// base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Tenant: lift X-Tenant-ID into context for logging and limiting
//  4. RedactingLogger: structured logs with secret/PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics, gzip
//  8. Rate limiter (per tenant/IP; webhook routes bypass)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, v *vault.Vault, aiClient ai.Client, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Tenant identity from the fronting auth layer
	r.Use(middleware.Tenant())

	// 4) Structured logging with redaction (webhook secrets masked by default)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics, /metrics endpoint, response compression
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Token-bucket rate limiter per tenant/IP; webhook deliveries bypass
	markBypass := middleware.MarkRateBypass()
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/webhooks/") {
			markBypass(c)
			return
		}
		c.Next()
	})
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByTenantOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID", "X-Operator-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID", "X-Operator-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/vault/ai/outbound
	deliverer := outbound.NewClient(cfg.OutboundTimeout)
	integrationSvc := services.NewIntegrationService(db, v)
	responder := services.NewResponder(aiClient, v, cfg.AI.DefaultKey)
	pipeline := services.NewPipeline(db, integrationSvc, responder, deliverer, cfg.MetaAppSecret, cfg.OutboundTimeout)
	convSvc := services.NewConversationService(db, integrationSvc, deliverer, cfg.OutboundTimeout)
	aiCfgSvc := services.NewAIConfigService(db, v)
	auditSvc := services.NewAuditService(db)

	wh := handlers.NewWebhooks(pipeline)
	h := handlers.New(integrationSvc, convSvc, aiCfgSvc, auditSvc)

	// Provider webhooks (no tenant header; identity comes from the payload)
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/telegram", wh.TelegramWebhook)
		webhooks.GET("/whatsapp", wh.VerifyWhatsAppWebhook)
		webhooks.POST("/whatsapp", wh.WhatsAppWebhook)
		webhooks.GET("/instagram", wh.VerifyInstagramWebhook)
		webhooks.POST("/instagram", wh.InstagramWebhook)
	}

	// Operator API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		// Integrations
		api.POST("/integrations/telegram", h.ConnectTelegram)
		api.POST("/integrations/whatsapp", h.ConnectWhatsApp)
		api.POST("/integrations/instagram", h.ConnectInstagram)
		api.GET("/integrations/status", h.IntegrationStatus)
		api.DELETE("/integrations/:channel", h.DisconnectIntegration)

		// Conversations
		api.GET("/conversations", h.ListConversations)
		api.GET("/conversations/search", h.SearchConversations)
		api.GET("/conversations/:id", h.GetConversation)
		api.POST("/conversations/:id/assume", h.AssumeConversation)
		api.POST("/conversations/:id/release", h.ReleaseConversation)
		api.POST("/conversations/:id/messages", h.SendMessage)

		// Assistant configuration
		api.GET("/ai-config", h.GetAIConfig)
		api.PUT("/ai-config", h.UpdateAIConfig)

		// Notifications and audit trail
		api.GET("/notifications", h.ListNotifications)
		api.POST("/notifications/:id/read", h.MarkNotificationRead)
		api.GET("/logs", h.ListLogs)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
