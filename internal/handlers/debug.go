package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swap-service/internal/telemetry"
)

// RegisterDebugRoutes mounts debug-only endpoints. They are only wired
// when DEBUG_ROUTES is enabled.
func RegisterDebugRoutes(r *gin.RouterGroup, emitter *telemetry.AuditEmitter) {
	r.POST("/audit-test", func(c *gin.Context) {
		requestID := requestIDFromContext(c)
		emitter.Emit(c.Request.Context(), "DEBUG", "audit test event", requestID, auditUserID(c))
		c.JSON(http.StatusOK, gin.H{"status": "emitted", "request_id": requestID})
	})
}
