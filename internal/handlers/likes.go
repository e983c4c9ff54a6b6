package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/matching"
	"swap-service/internal/models"
	"swap-service/internal/notify"
	"swap-service/internal/observability"
	"swap-service/internal/repositories"
	"swap-service/internal/telemetry"
)

// LikeHandler serves like creation and the liker-facing read views.
type LikeHandler struct {
	engine   matching.Matcher
	likeRepo repositories.LikeRepository
	notifier notify.Notifier
	emitter  *telemetry.AuditEmitter
}

// NewLikeHandler constructs a LikeHandler.
func NewLikeHandler(engine matching.Matcher, likeRepo repositories.LikeRepository, notifier notify.Notifier, emitter *telemetry.AuditEmitter) *LikeHandler {
	return &LikeHandler{engine: engine, likeRepo: likeRepo, notifier: notifier, emitter: emitter}
}

// LikeItem records the caller's like on an item. Repeated likes are
// acknowledged without side effects; a new like triggers the reciprocity
// evaluation and may create matches and a chat.
func (h *LikeHandler) LikeItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	userID := currentUserID(c)

	outcome, err := h.engine.LikeItem(c.Request.Context(), itemID, userID)
	if errors.Is(err, matching.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if errors.Is(err, matching.ErrOwnItemLike) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot like your own item"})
		return
	}
	if err != nil {
		logger.Log.Error("like item failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like item"})
		return
	}

	requestID := requestIDFromContext(c)
	headers := observability.BuildHeaders(requestID, "")

	if outcome.AlreadyLiked {
		observability.IncLike("duplicate")
		c.JSON(http.StatusOK, gin.H{"status": "already_liked", "like": outcome.Like})
		return
	}

	observability.IncLike("created")
	_ = observability.PublishEvent(c.Request.Context(), observability.RoutingKeyLikes, observability.EventEnvelope{
		EventType: "swap_events",
		EventName: "like_created",
		Payload:   outcome.Like,
	}, headers)

	resp := gin.H{"status": "liked", "like": outcome.Like}
	if len(outcome.NewMatches) > 0 {
		observability.AddMatchesCreated(len(outcome.NewMatches))
		resp["new_matches"] = outcome.NewMatches
		resp["chat"] = outcome.Chat
		_ = observability.PublishEvent(c.Request.Context(), observability.RoutingKeyMatches, observability.EventEnvelope{
			EventType: "swap_events",
			EventName: "match_created",
			Payload: gin.H{
				"matches": outcome.NewMatches,
				"chat_id": outcome.Chat.ID,
			},
		}, headers)
		h.emitter.Emit(c.Request.Context(), "INFO", "reciprocal likes matched", requestID, auditUserID(c))

		matchIDs := make([]int, 0, len(outcome.NewMatches))
		for _, m := range outcome.NewMatches {
			matchIDs = append(matchIDs, m.ID)
		}
		event := notify.MatchEvent{
			ChatID:   outcome.Chat.ID,
			UserOne:  outcome.Chat.ParticipantOne,
			UserTwo:  outcome.Chat.ParticipantTwo,
			MatchIDs: matchIDs,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			h.notifier.MatchCreated(ctx, event)
		}()
	}
	c.JSON(http.StatusCreated, resp)
}

// ListLikes returns the caller's liked items plus like counts on the
// caller's own items.
func (h *LikeHandler) ListLikes(c *gin.Context) {
	userID := currentUserID(c)

	liked, err := h.likeRepo.ListForLiker(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("list likes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list likes"})
		return
	}
	counts, err := h.likeRepo.CountsByItemForOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("list like counts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list likes"})
		return
	}

	if liked == nil {
		liked = []models.LikedItem{}
	}
	if counts == nil {
		counts = []models.ItemLikeCount{}
	}
	c.JSON(http.StatusOK, gin.H{"liked_items": liked, "my_items": counts})
}
