package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"swap-service/internal/models"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrImageNotFound = errors.New("image not found")
)

// ItemRepository abstracts item, image and category persistence.
type ItemRepository interface {
	Create(ctx context.Context, item models.Item) (models.Item, error)
	Get(ctx context.Context, itemID int) (models.Item, error)
	Update(ctx context.Context, item models.Item) (models.Item, error)
	Delete(ctx context.Context, itemID int) error
	IsMatched(ctx context.Context, itemID int) (bool, error)
	ListBrowse(ctx context.Context, viewerID int, categoryID int) ([]models.Item, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error)
	ListImages(ctx context.Context, itemID int) ([]models.ItemImage, error)
	AddImage(ctx context.Context, itemID int, url string) (models.ItemImage, error)
	GetImage(ctx context.Context, imageID int) (models.ItemImage, error)
	DeleteImage(ctx context.Context, imageID int) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// ItemRepo is a sqlx implementation of ItemRepository.
type ItemRepo struct {
	db *sqlx.DB
}

// NewItemRepo constructs an ItemRepo.
func NewItemRepo(db *sqlx.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create stores a new item.
func (r *ItemRepo) Create(ctx context.Context, item models.Item) (models.Item, error) {
	if item.Status == "" {
		item.Status = models.ItemStatusAvailable
	}
	var created models.Item
	err := r.db.GetContext(ctx, &created, `INSERT INTO items (name, description, category_id, owner_id, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, description, category_id, owner_id, status, created_at`,
		item.Name, item.Description, item.CategoryID, item.OwnerID, item.Status)
	return created, err
}

// Get fetches an item by id.
func (r *ItemRepo) Get(ctx context.Context, itemID int) (models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item, `SELECT id, name, description, category_id, owner_id, status, created_at FROM items WHERE id=$1`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return item, err
}

// Update rewrites the mutable item fields. The name is fixed at creation.
func (r *ItemRepo) Update(ctx context.Context, item models.Item) (models.Item, error) {
	var updated models.Item
	err := r.db.GetContext(ctx, &updated, `UPDATE items SET description=$2, category_id=$3, status=$4 WHERE id=$1
        RETURNING id, name, description, category_id, owner_id, status, created_at`,
		item.ID, item.Description, item.CategoryID, item.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return updated, err
}

// Delete removes an item; images and likes cascade.
func (r *ItemRepo) Delete(ctx context.Context, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, itemID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrItemNotFound
	}
	return nil
}

// IsMatched reports whether any match references a like on the item.
func (r *ItemRepo) IsMatched(ctx context.Context, itemID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(
        SELECT 1 FROM matches m
        JOIN likes l1 ON l1.id = m.like_one_id
        JOIN likes l2 ON l2.id = m.like_two_id
        WHERE l1.item_id=$1 OR l2.item_id=$1)`, itemID)
	return exists, err
}

// ListBrowse returns items offered by other users, optionally filtered by
// category. categoryID 0 means all categories.
func (r *ItemRepo) ListBrowse(ctx context.Context, viewerID int, categoryID int) ([]models.Item, error) {
	query := `SELECT id, name, description, category_id, owner_id, status, created_at FROM items
        WHERE owner_id <> $1 AND ($2 = 0 OR category_id = $2)
        ORDER BY name ASC, id ASC`
	var items []models.Item
	err := r.db.SelectContext(ctx, &items, query, viewerID, categoryID)
	return items, err
}

// ListByOwner returns the items owned by a user.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error) {
	var items []models.Item
	err := r.db.SelectContext(ctx, &items, `SELECT id, name, description, category_id, owner_id, status, created_at FROM items WHERE owner_id=$1 ORDER BY id ASC`, ownerID)
	return items, err
}

// ListImages returns the image references of an item.
func (r *ItemRepo) ListImages(ctx context.Context, itemID int) ([]models.ItemImage, error) {
	var images []models.ItemImage
	err := r.db.SelectContext(ctx, &images, `SELECT id, item_id, url FROM item_images WHERE item_id=$1 ORDER BY id ASC`, itemID)
	return images, err
}

// AddImage attaches an image reference to an item.
func (r *ItemRepo) AddImage(ctx context.Context, itemID int, url string) (models.ItemImage, error) {
	var image models.ItemImage
	err := r.db.GetContext(ctx, &image, `INSERT INTO item_images (item_id, url) VALUES ($1, $2) RETURNING id, item_id, url`, itemID, url)
	return image, err
}

// GetImage fetches a single image reference.
func (r *ItemRepo) GetImage(ctx context.Context, imageID int) (models.ItemImage, error) {
	var image models.ItemImage
	err := r.db.GetContext(ctx, &image, `SELECT id, item_id, url FROM item_images WHERE id=$1`, imageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ItemImage{}, ErrImageNotFound
	}
	return image, err
}

// DeleteImage removes an image reference.
func (r *ItemRepo) DeleteImage(ctx context.Context, imageID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM item_images WHERE id=$1`, imageID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrImageNotFound
	}
	return nil
}

// ListCategories returns all item categories.
func (r *ItemRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY name ASC`)
	return categories, err
}
