// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootBanner is the plain-text body served at "/".
const RootBanner = "Todo API is running"

// Root handles GET / with a plain-text liveness banner.
func Root(c *gin.Context) {
	c.String(http.StatusOK, RootBanner)
}

// Health handles the /healthz liveness probe for GET, HEAD and OPTIONS.
// Responses are never cached.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
