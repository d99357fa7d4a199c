package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(ctx context.Context) (*models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, cartID string, productID uint, quantity uint16) (*models.CartItem, error)
	GetItem(ctx context.Context, cartID string, itemID uint) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity uint16) (*models.CartItem, error)
	DeleteItem(ctx context.Context, cartID string, itemID uint) error
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Create stores an empty cart with a fresh UUID.
func (r *GORMCartRepository) Create(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{ID: uuid.NewString(), Items: []models.CartItem{}}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// GetByID retrieves a cart with its items and their products.
func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("cart", id)
	}
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "cart", id)
	}
	return &cart, nil
}

func (r *GORMCartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of cart %s: %w", id, err)
		}
		res := tx.Delete(&models.Cart{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFound("cart", id)
		}
		return nil
	})
}

// AddItem puts a product in the cart. When the product is already there the
// quantities are summed instead of adding a second line.
func (r *GORMCartRepository) AddItem(ctx context.Context, cartID string, productID uint, quantity uint16) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			return tx.Omit(clause.Associations).Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, translate(err, "cart item", productID)
	}
	return r.GetItem(ctx, cartID, item.ID)
}

func (r *GORMCartRepository) GetItem(ctx context.Context, cartID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		First(&item, itemID).Error
	if err != nil {
		return nil, translate(err, "cart item", itemID)
	}
	return &item, nil
}

func (r *GORMCartRepository) UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity uint16) (*models.CartItem, error) {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("cart item", itemID)
	}
	return r.GetItem(ctx, cartID, itemID)
}

func (r *GORMCartRepository) DeleteItem(ctx context.Context, cartID string, itemID uint) error {
	res := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("cart item", itemID)
	}
	return nil
}
