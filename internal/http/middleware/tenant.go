// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides tenant-identity propagation. Operator endpoints are
// fronted by an authenticating proxy that resolves the caller and forwards
// the owning tenant in the X-Tenant-ID header; Tenant() lifts that header
// into the Gin context so logging and rate limiting can key on it without
// re-reading headers.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// tenantIDKey is the Gin context key under which the tenant ID is stored.
	tenantIDKey = "tenantID"
	// tenantIDHeader carries the tenant identity from the fronting auth layer.
	tenantIDHeader = "X-Tenant-ID"
)

// Tenant copies the X-Tenant-ID header into the Gin context. It never
// rejects: webhook endpoints legitimately arrive without a tenant (identity
// is resolved from the event payload), and operator handlers enforce the
// header themselves.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(tenantIDHeader)); id != "" {
			c.Set(tenantIDKey, id)
		}
		c.Next()
	}
}

// TenantFrom returns the tenant ID previously stored by Tenant(), or "".
func TenantFrom(c *gin.Context) string {
	v, _ := c.Get(tenantIDKey)
	s, _ := v.(string)
	return s
}
