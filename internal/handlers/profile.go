package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/cache"
	"swap-service/internal/logger"
	"swap-service/internal/models"
	"swap-service/internal/repositories"
)

// ProfileHandler serves the public user profile view.
type ProfileHandler struct {
	userRepo   repositories.UserRepository
	itemRepo   repositories.ItemRepository
	ratingRepo repositories.RatingRepository
	ratings    *cache.RatingCache
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(userRepo repositories.UserRepository, itemRepo repositories.ItemRepository, ratingRepo repositories.RatingRepository, ratings *cache.RatingCache) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, itemRepo: itemRepo, ratingRepo: ratingRepo, ratings: ratings}
}

// GetProfile returns a user with their offered items and rating summary.
// The summary is served from the cache when warm.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userRepo.Get(c.Request.Context(), userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		logger.Log.Error("get user failed", zap.Error(err), zap.Int("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	items, err := h.itemRepo.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Error("list items failed", zap.Error(err), zap.Int("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	summary, hit := h.ratings.Get(c.Request.Context(), userID)
	if !hit {
		summary, err = h.ratingRepo.Summary(c.Request.Context(), userID)
		if err != nil {
			logger.Log.Error("rating summary failed", zap.Error(err), zap.Int("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
		h.ratings.Set(c.Request.Context(), userID, summary)
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "items": items, "rating": summary})
}
