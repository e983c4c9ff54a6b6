package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/cache"
	"swap-service/internal/logger"
	"swap-service/internal/repositories"
)

// RatingHandler serves the post-swap rating endpoint.
type RatingHandler struct {
	ratingRepo repositories.RatingRepository
	userRepo   repositories.UserRepository
	ratings    *cache.RatingCache
}

// NewRatingHandler constructs a RatingHandler.
func NewRatingHandler(ratingRepo repositories.RatingRepository, userRepo repositories.UserRepository, ratings *cache.RatingCache) *RatingHandler {
	return &RatingHandler{ratingRepo: ratingRepo, userRepo: userRepo, ratings: ratings}
}

type rateUserRequest struct {
	Rating int `json:"rating"`
}

// RateUser records a 1 to 5 rating for another user. Rating is only open
// between matched users, and a repeated rating from the same caller
// overwrites the previous one.
func (h *RatingHandler) RateUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	userID := currentUserID(c)
	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot rate yourself"})
		return
	}

	var req rateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	if _, err := h.userRepo.Get(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Log.Error("get user failed", zap.Error(err), zap.Int("user_id", targetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rate user"})
		return
	}

	matched, err := h.ratingRepo.HasMatchBetween(c.Request.Context(), userID, targetID)
	if err != nil {
		logger.Log.Error("match check failed", zap.Error(err), zap.Int("user_id", targetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rate user"})
		return
	}
	if !matched {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only rate matched users"})
		return
	}

	rating, err := h.ratingRepo.Upsert(c.Request.Context(), targetID, userID, req.Rating)
	if err != nil {
		logger.Log.Error("store rating failed", zap.Error(err), zap.Int("user_id", targetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rate user"})
		return
	}
	h.ratings.Invalidate(c.Request.Context(), targetID)

	c.JSON(http.StatusOK, rating)
}
