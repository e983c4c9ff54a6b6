package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/matching"
	"swap-service/internal/models"
	"swap-service/internal/observability"
	"swap-service/internal/repositories"
	"swap-service/internal/telemetry"
	"swap-service/internal/ws"
)

// ChatHandler serves chat listing, the message history, message posting
// and the chat teardown endpoint.
type ChatHandler struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	engine      matching.Matcher
	hub         *ws.Hub
	emitter     *telemetry.AuditEmitter
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, engine matching.Matcher, hub *ws.Hub, emitter *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{chatRepo: chatRepo, messageRepo: messageRepo, engine: engine, hub: hub, emitter: emitter}
}

// ListChats returns the caller's chats, newest first.
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID := currentUserID(c)

	chats, err := h.chatRepo.ListChats(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("list chats failed", zap.Error(err), zap.Int("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chats"})
		return
	}
	if chats == nil {
		chats = []models.ChatSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// authorizeChat resolves the chat and verifies the caller participates
// in it, writing the error response itself when either fails.
func (h *ChatHandler) authorizeChat(c *gin.Context) (models.Chat, bool) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return models.Chat{}, false
	}

	chat, err := h.chatRepo.GetChat(c.Request.Context(), chatID)
	if errors.Is(err, repositories.ErrChatNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return models.Chat{}, false
	}
	if err != nil {
		logger.Log.Error("get chat failed", zap.Error(err), zap.Int("chat_id", chatID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat"})
		return models.Chat{}, false
	}

	userID := currentUserID(c)
	if chat.ParticipantOne != userID && chat.ParticipantTwo != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
		return models.Chat{}, false
	}
	return chat, true
}

// GetMessages returns the chat history in send order.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chat, ok := h.authorizeChat(c)
	if !ok {
		return
	}

	messages, err := h.messageRepo.ListByChat(c.Request.Context(), chat.ID)
	if err != nil {
		logger.Log.Error("list messages failed", zap.Error(err), zap.Int("chat_id", chat.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat, "messages": messages})
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// PostMessage appends a message to the chat and fans it out to connected
// websocket clients. Blank text is acknowledged without storing anything.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	chat, ok := h.authorizeChat(c)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	userID := currentUserID(c)
	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), chat.ID, userID, req.Text)
	if err != nil {
		logger.Log.Error("store message failed", zap.Error(err), zap.Int("chat_id", chat.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	observability.IncMessageStored()
	h.hub.BroadcastChatMessage(chat.ID, msg)
	_ = observability.PublishEvent(c.Request.Context(), observability.RoutingKeyMessages, observability.EventEnvelope{
		EventType: "swap_events",
		EventName: "message_stored",
		Payload:   msg,
	}, observability.BuildHeaders(requestIDFromContext(c), ""))

	c.JSON(http.StatusCreated, msg)
}

// DeleteChat tears down the chat and the likes and matches between its
// participants, then notifies connected clients.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}
	userID := currentUserID(c)

	err = h.engine.DeleteChatAndRelatedData(c.Request.Context(), chatID, userID)
	if errors.Is(err, matching.ErrChatNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	if errors.Is(err, matching.ErrNotParticipant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
		return
	}
	if err != nil {
		logger.Log.Error("delete chat failed", zap.Error(err), zap.Int("chat_id", chatID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat"})
		return
	}

	observability.IncChatDeleted()
	h.hub.BroadcastChatDeleted(chatID)
	requestID := requestIDFromContext(c)
	_ = observability.PublishEvent(c.Request.Context(), observability.RoutingKeyChats, observability.EventEnvelope{
		EventType: "swap_events",
		EventName: "chat_deleted",
		Payload:   gin.H{"chat_id": chatID, "requested_by": userID},
	}, observability.BuildHeaders(requestID, ""))
	h.emitter.Emit(c.Request.Context(), "INFO", "chat torn down", requestID, auditUserID(c))

	c.Status(http.StatusNoContent)
}
