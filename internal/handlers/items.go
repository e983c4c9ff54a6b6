package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/models"
	"swap-service/internal/repositories"
)

// ItemHandler serves the item, image and category endpoints.
type ItemHandler struct {
	itemRepo repositories.ItemRepository
}

// NewItemHandler constructs an ItemHandler.
func NewItemHandler(itemRepo repositories.ItemRepository) *ItemHandler {
	return &ItemHandler{itemRepo: itemRepo}
}

func validStatus(status string) bool {
	return status == models.ItemStatusAvailable || status == models.ItemStatusReserved
}

// ListItems returns items offered by other users, optionally filtered by
// the category query parameter.
func (h *ItemHandler) ListItems(c *gin.Context) {
	categoryID := 0
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		categoryID = parsed
	}

	items, err := h.itemRepo.ListBrowse(c.Request.Context(), currentUserID(c), categoryID)
	if err != nil {
		logger.Log.Error("list items failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  int    `json:"category_id" binding:"required"`
	Status      string `json:"status"`
}

// CreateItem stores a new item owned by the caller.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Status != "" && !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	item, err := h.itemRepo.Create(c.Request.Context(), models.Item{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		OwnerID:     currentUserID(c),
		Status:      req.Status,
	})
	if err != nil {
		logger.Log.Error("create item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetItem returns an item with its image references.
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.itemRepo.Get(c.Request.Context(), itemID)
	if errors.Is(err, repositories.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if err != nil {
		logger.Log.Error("get item failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return
	}

	images, err := h.itemRepo.ListImages(c.Request.Context(), itemID)
	if err != nil {
		logger.Log.Error("list images failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return
	}
	if images == nil {
		images = []models.ItemImage{}
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "images": images})
}

type updateItemRequest struct {
	Description string `json:"description"`
	CategoryID  int    `json:"category_id" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

// UpdateItem rewrites the mutable fields of an item the caller owns.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, ok := h.ownedItem(c, itemID)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	item.Description = req.Description
	item.CategoryID = req.CategoryID
	item.Status = req.Status
	updated, err := h.itemRepo.Update(c.Request.Context(), item)
	if err != nil {
		logger.Log.Error("update item failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteItem removes an item the caller owns. Items referenced by a
// match are refused; the match has to be torn down first.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if _, ok := h.ownedItem(c, itemID); !ok {
		return
	}

	matched, err := h.itemRepo.IsMatched(c.Request.Context(), itemID)
	if err != nil {
		logger.Log.Error("match check failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	if matched {
		c.JSON(http.StatusConflict, gin.H{"error": "item is part of a match"})
		return
	}

	if err := h.itemRepo.Delete(c.Request.Context(), itemID); err != nil {
		logger.Log.Error("delete item failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	c.Status(http.StatusNoContent)
}

type addImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// AddImage attaches an image reference to an item the caller owns.
func (h *ItemHandler) AddImage(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if _, ok := h.ownedItem(c, itemID); !ok {
		return
	}

	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	image, err := h.itemRepo.AddImage(c.Request.Context(), itemID, req.URL)
	if err != nil {
		logger.Log.Error("add image failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add image"})
		return
	}
	c.JSON(http.StatusCreated, image)
}

// DeleteImage removes an image reference from an item the caller owns.
func (h *ItemHandler) DeleteImage(c *gin.Context) {
	imageID, err := strconv.Atoi(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	image, err := h.itemRepo.GetImage(c.Request.Context(), imageID)
	if errors.Is(err, repositories.ErrImageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	if err != nil {
		logger.Log.Error("get image failed", zap.Error(err), zap.Int("image_id", imageID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	if _, ok := h.ownedItem(c, image.ItemID); !ok {
		return
	}

	if err := h.itemRepo.DeleteImage(c.Request.Context(), imageID); err != nil {
		logger.Log.Error("delete image failed", zap.Error(err), zap.Int("image_id", imageID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories returns all item categories.
func (h *ItemHandler) ListCategories(c *gin.Context) {
	categories, err := h.itemRepo.ListCategories(c.Request.Context())
	if err != nil {
		logger.Log.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ownedItem fetches the item and verifies the caller owns it, writing
// the error response itself when either fails.
func (h *ItemHandler) ownedItem(c *gin.Context, itemID int) (models.Item, bool) {
	item, err := h.itemRepo.Get(c.Request.Context(), itemID)
	if errors.Is(err, repositories.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return models.Item{}, false
	}
	if err != nil {
		logger.Log.Error("get item failed", zap.Error(err), zap.Int("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load item"})
		return models.Item{}, false
	}
	if item.OwnerID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the item owner"})
		return models.Item{}, false
	}
	return item, true
}
