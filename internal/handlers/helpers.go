package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDContextKey = "request_id"

// requestIDFromContext returns the request id for the current request,
// taking the client-supplied header when present and minting one
// otherwise. The id is cached on the context so every emitter in the
// request sees the same value.
func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(requestIDContextKey); id != "" {
		return id
	}
	id := c.GetHeader("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDContextKey, id)
	return id
}

// currentUserID returns the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt("userID")
}

// auditUserID adapts the authenticated user id for audit envelopes.
func auditUserID(c *gin.Context) *int64 {
	id := int64(currentUserID(c))
	return &id
}
