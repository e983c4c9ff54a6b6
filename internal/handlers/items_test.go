package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swap-service/internal/mocks"
	"swap-service/internal/models"
	"swap-service/internal/repositories"
)

func setupItemRouter(h *ItemHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.GET("/items", h.ListItems)
	r.POST("/items", h.CreateItem)
	r.GET("/items/:item_id", h.GetItem)
	r.PUT("/items/:item_id", h.UpdateItem)
	r.DELETE("/items/:item_id", h.DeleteItem)
	r.POST("/items/:item_id/images", h.AddImage)
	r.DELETE("/images/:image_id", h.DeleteImage)
	r.GET("/categories", h.ListCategories)
	return r
}

func TestCreateItem(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Create", mock.Anything, models.Item{
		Name: "bike", Description: "red bike", CategoryID: 2, OwnerID: 1,
	}).Return(models.Item{ID: 10, Name: "bike", Description: "red bike", CategoryID: 2, OwnerID: 1, Status: models.ItemStatusAvailable}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"bike","description":"red bike","category_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var item models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 10, item.ID)
	assert.Equal(t, models.ItemStatusAvailable, item.Status)
	itemRepo.AssertExpectations(t)
}

func TestCreateItemMissingName(t *testing.T) {
	router := setupItemRouter(NewItemHandler(new(mocks.ItemRepositoryMock)), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"category_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItemInvalidStatus(t *testing.T) {
	router := setupItemRouter(NewItemHandler(new(mocks.ItemRepositoryMock)), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"bike","category_id":2,"status":"SOLD"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListItemsFiltersByCategory(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("ListBrowse", mock.Anything, 1, 3).Return([]models.Item{
		{ID: 5, Name: "lamp", CategoryID: 3, OwnerID: 2, Status: models.ItemStatusAvailable},
	}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items?category=3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []models.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "lamp", resp.Items[0].Name)
}

func TestGetItemNotFound(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Get", mock.Anything, 99).Return(models.Item{}, repositories.ErrItemNotFound)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateItemNotOwner(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Get", mock.Anything, 10).Return(models.Item{ID: 10, OwnerID: 2}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/items/10", strings.NewReader(`{"category_id":2,"status":"AVAILABLE"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteItemRefusedWhileMatched(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Get", mock.Anything, 10).Return(models.Item{ID: 10, OwnerID: 1}, nil)
	itemRepo.On("IsMatched", mock.Anything, 10).Return(true, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/items/10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	itemRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteItem(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Get", mock.Anything, 10).Return(models.Item{ID: 10, OwnerID: 1}, nil)
	itemRepo.On("IsMatched", mock.Anything, 10).Return(false, nil)
	itemRepo.On("Delete", mock.Anything, 10).Return(nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/items/10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	itemRepo.AssertExpectations(t)
}

func TestAddImage(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("Get", mock.Anything, 10).Return(models.Item{ID: 10, OwnerID: 1}, nil)
	itemRepo.On("AddImage", mock.Anything, 10, "https://img.example/bike.jpg").
		Return(models.ItemImage{ID: 4, ItemID: 10, URL: "https://img.example/bike.jpg"}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/10/images", strings.NewReader(`{"url":"https://img.example/bike.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var image models.ItemImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &image))
	assert.Equal(t, 4, image.ID)
}

func TestDeleteImageNotOwner(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("GetImage", mock.Anything, 4).Return(models.ItemImage{ID: 4, ItemID: 10}, nil)
	itemRepo.On("Get", mock.Anything, 10).Return(models.Item{ID: 10, OwnerID: 2}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/images/4", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	itemRepo.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
}

func TestListCategories(t *testing.T) {
	itemRepo := new(mocks.ItemRepositoryMock)
	itemRepo.On("ListCategories", mock.Anything).Return([]models.Category{
		{ID: 1, Name: "books"},
		{ID: 2, Name: "electronics"},
	}, nil)

	router := setupItemRouter(NewItemHandler(itemRepo), 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 2)
}
