package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swap-service/internal/matching"
	"swap-service/internal/mocks"
	"swap-service/internal/models"
)

func setupLikeRouter(h *LikeHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.POST("/items/:item_id/like", h.LikeItem)
	r.GET("/likes", h.ListLikes)
	return r
}

func TestLikeItemCreated(t *testing.T) {
	engine := new(mocks.MatcherMock)
	notifier := new(mocks.NotifierMock)
	engine.On("LikeItem", mock.Anything, 10, 1).Return(matching.LikeOutcome{
		Like: models.Like{ID: 1, ItemID: 10, LikerID: 1},
	}, nil)

	h := NewLikeHandler(engine, new(mocks.LikeRepositoryMock), notifier, nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/10/like", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "liked", resp["status"])
	assert.NotContains(t, resp, "new_matches")
	engine.AssertExpectations(t)
	notifier.AssertNotCalled(t, "MatchCreated", mock.Anything, mock.Anything)
}

func TestLikeItemTriggersMatch(t *testing.T) {
	engine := new(mocks.MatcherMock)
	notifier := new(mocks.NotifierMock)
	chat := &models.Chat{ID: 7, ParticipantOne: 1, ParticipantTwo: 2}
	engine.On("LikeItem", mock.Anything, 10, 1).Return(matching.LikeOutcome{
		Like:       models.Like{ID: 3, ItemID: 10, LikerID: 1},
		NewMatches: []models.Match{{ID: 5, LikeOneID: 3, LikeTwoID: 4}},
		Chat:       chat,
	}, nil)

	notified := make(chan struct{})
	notifier.On("MatchCreated", mock.Anything, mock.MatchedBy(func(event interface{}) bool {
		return true
	})).Run(func(args mock.Arguments) {
		close(notified)
	}).Return()

	h := NewLikeHandler(engine, new(mocks.LikeRepositoryMock), notifier, nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/10/like", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "new_matches")
	assert.Contains(t, resp, "chat")

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("match webhook was not invoked")
	}
	engine.AssertExpectations(t)
}

func TestLikeItemAlreadyLiked(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("LikeItem", mock.Anything, 10, 1).Return(matching.LikeOutcome{
		Like:         models.Like{ID: 1, ItemID: 10, LikerID: 1},
		AlreadyLiked: true,
	}, nil)

	h := NewLikeHandler(engine, new(mocks.LikeRepositoryMock), new(mocks.NotifierMock), nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/10/like", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_liked", resp["status"])
}

func TestLikeItemNotFound(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("LikeItem", mock.Anything, 99, 1).Return(matching.LikeOutcome{}, matching.ErrItemNotFound)

	h := NewLikeHandler(engine, new(mocks.LikeRepositoryMock), new(mocks.NotifierMock), nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/99/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeOwnItemRejected(t *testing.T) {
	engine := new(mocks.MatcherMock)
	engine.On("LikeItem", mock.Anything, 10, 1).Return(matching.LikeOutcome{}, matching.ErrOwnItemLike)

	h := NewLikeHandler(engine, new(mocks.LikeRepositoryMock), new(mocks.NotifierMock), nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/10/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeItemInvalidID(t *testing.T) {
	h := NewLikeHandler(new(mocks.MatcherMock), new(mocks.LikeRepositoryMock), new(mocks.NotifierMock), nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/abc/like", bytes.NewReader(nil))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLikes(t *testing.T) {
	likeRepo := new(mocks.LikeRepositoryMock)
	likeRepo.On("ListForLiker", mock.Anything, 1).Return([]models.LikedItem{
		{LikeID: 2, ItemID: 10, ItemName: "bike", ItemStatus: models.ItemStatusAvailable, OwnerID: 2},
	}, nil)
	likeRepo.On("CountsByItemForOwner", mock.Anything, 1).Return([]models.ItemLikeCount{
		{ItemID: 20, ItemName: "guitar", Likes: 3},
	}, nil)

	h := NewLikeHandler(new(mocks.MatcherMock), likeRepo, new(mocks.NotifierMock), nil)
	router := setupLikeRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/likes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		LikedItems []models.LikedItem     `json:"liked_items"`
		MyItems    []models.ItemLikeCount `json:"my_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.LikedItems, 1)
	require.Len(t, resp.MyItems, 1)
	assert.Equal(t, "bike", resp.LikedItems[0].ItemName)
	assert.Equal(t, 3, resp.MyItems[0].Likes)
	likeRepo.AssertExpectations(t)
}
