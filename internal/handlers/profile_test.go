package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swap-service/internal/cache"
	"swap-service/internal/mocks"
	"swap-service/internal/models"
	"swap-service/internal/repositories"
)

func setupProfileRouter(h *ProfileHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.GET("/users/:user_id", h.GetProfile)
	return r
}

func TestGetProfile(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	itemRepo := new(mocks.ItemRepositoryMock)
	ratingRepo := new(mocks.RatingRepositoryMock)
	userRepo.On("Get", mock.Anything, 2).Return(models.User{ID: 2, Username: "sam", City: "Berlin"}, nil)
	itemRepo.On("ListByOwner", mock.Anything, 2).Return([]models.Item{
		{ID: 10, Name: "bike", OwnerID: 2, Status: models.ItemStatusAvailable},
	}, nil)
	ratingRepo.On("Summary", mock.Anything, 2).Return(models.RatingSummary{Average: 4.5, Count: 2}, nil)

	h := NewProfileHandler(userRepo, itemRepo, ratingRepo, cache.NewRatingCache(nil, 0))
	router := setupProfileRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User   models.User          `json:"user"`
		Items  []models.Item        `json:"items"`
		Rating models.RatingSummary `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sam", resp.User.Username)
	require.Len(t, resp.Items, 1)
	assert.InDelta(t, 4.5, resp.Rating.Average, 0.001)
	assert.Equal(t, 2, resp.Rating.Count)
}

func TestGetProfileNotFound(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	userRepo.On("Get", mock.Anything, 99).Return(models.User{}, repositories.ErrUserNotFound)

	h := NewProfileHandler(userRepo, new(mocks.ItemRepositoryMock), new(mocks.RatingRepositoryMock), cache.NewRatingCache(nil, 0))
	router := setupProfileRouter(h, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
