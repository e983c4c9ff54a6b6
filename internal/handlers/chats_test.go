package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swap-service/internal/matching"
	"swap-service/internal/mocks"
	"swap-service/internal/models"
	"swap-service/internal/repositories"
	"swap-service/internal/ws"
)

func setupChatRouter(h *ChatHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.GET("/chats", h.ListChats)
	r.GET("/chats/:chat_id/messages", h.GetMessages)
	r.POST("/chats/:chat_id/messages", h.PostMessage)
	r.DELETE("/chats/:chat_id", h.DeleteChat)
	return r
}

func TestListChats(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("ListChats", mock.Anything, 1).Return([]models.ChatSummary{
		{ChatID: 7, OtherUserID: 2, Created: time.Now()},
	}, nil)

	h := NewChatHandler(chatRepo, new(mocks.MessageRepositoryMock), new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Chats []models.ChatSummary `json:"chats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Chats, 1)
	assert.Equal(t, 2, resp.Chats[0].OtherUserID)
}

func TestGetMessagesOrdered(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, ParticipantOne: 1, ParticipantTwo: 2}, nil)
	messageRepo := new(mocks.MessageRepositoryMock)
	messageRepo.On("ListByChat", mock.Anything, 7).Return([]models.Message{
		{ID: 1, ChatID: 7, SenderID: 1, Text: "hi"},
		{ID: 2, ChatID: 7, SenderID: 2, Text: "hello"},
	}, nil)

	h := NewChatHandler(chatRepo, messageRepo, new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chats/7/messages", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "hi", resp.Messages[0].Text)
	assert.Equal(t, "hello", resp.Messages[1].Text)
}

func TestGetMessagesNotParticipant(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, ParticipantOne: 2, ParticipantTwo: 3}, nil)

	h := NewChatHandler(chatRepo, new(mocks.MessageRepositoryMock), new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chats/7/messages", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostMessage(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, ParticipantOne: 1, ParticipantTwo: 2}, nil)
	messageRepo := new(mocks.MessageRepositoryMock)
	messageRepo.On("CreateMessage", mock.Anything, 7, 1, "hello there").
		Return(models.Message{ID: 9, ChatID: 7, SenderID: 1, Text: "hello there"}, nil)

	h := NewChatHandler(chatRepo, messageRepo, new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chats/7/messages", strings.NewReader(`{"text":"hello there"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var msg models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, 9, msg.ID)
	messageRepo.AssertExpectations(t)
}

func TestPostMessageBlankTextIgnored(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("GetChat", mock.Anything, 7).Return(models.Chat{ID: 7, ParticipantOne: 1, ParticipantTwo: 2}, nil)
	messageRepo := new(mocks.MessageRepositoryMock)

	h := NewChatHandler(chatRepo, messageRepo, new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chats/7/messages", strings.NewReader(`{"text":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ignored", resp["status"])
	messageRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessageChatNotFound(t *testing.T) {
	chatRepo := new(mocks.ChatRepositoryMock)
	chatRepo.On("GetChat", mock.Anything, 99).Return(models.Chat{}, repositories.ErrChatNotFound)

	h := NewChatHandler(chatRepo, new(mocks.MessageRepositoryMock), new(mocks.MatcherMock), ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chats/99/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteChat(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("DeleteChatAndRelatedData", mock.Anything, 7, 1).Return(nil)

	h := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.MessageRepositoryMock), engine, ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/chats/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	engine.AssertExpectations(t)
}

func TestDeleteChatNotFound(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("DeleteChatAndRelatedData", mock.Anything, 99, 1).Return(matching.ErrChatNotFound)

	h := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.MessageRepositoryMock), engine, ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/chats/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteChatNotParticipant(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("DeleteChatAndRelatedData", mock.Anything, 7, 1).Return(matching.ErrNotParticipant)

	h := NewChatHandler(new(mocks.ChatRepositoryMock), new(mocks.MessageRepositoryMock), engine, ws.NewHub(), nil)
	router := setupChatRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/chats/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
