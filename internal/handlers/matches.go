package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/matching"
)

// MatchHandler serves the match list view.
type MatchHandler struct {
	engine matching.Matcher
}

// NewMatchHandler constructs a MatchHandler.
func NewMatchHandler(engine matching.Matcher) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// ListMatches returns the caller's matches grouped by the other user,
// each group carrying the items from both sides and the pair's chat.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID := currentUserID(c)

	groups, err := h.engine.ListMatches(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("list matches failed", zap.Error(err), zap.Int("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list matches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": groups})
}
