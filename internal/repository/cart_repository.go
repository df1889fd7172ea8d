package repository

import (
	"context"
	"errors"
	"fmt"

	"gomarket/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart and line item data access
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Update(ctx context.Context, cart *domain.Cart) error
	// FindCurrentByUser returns the user's non-purchased cart (active or
	// removed). Purchased carts are terminal and never returned here.
	FindCurrentByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	FindActiveByUser(ctx context.Context, userID int64) (*domain.Cart, error)

	CreateItem(ctx context.Context, item *domain.CartItem) error
	UpdateItem(ctx context.Context, item *domain.CartItem) error
	FindItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error)
	ListActiveItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create inserts a new cart row
func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Update persists changes to an existing cart
func (r *cartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	result := r.db.WithContext(ctx).Model(cart).Update("status", cart.Status)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// FindCurrentByUser retrieves the user's active or removed cart
func (r *cartRepository) FindCurrentByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]string{domain.CartStatusActive, domain.CartStatusRemoved}).
		Order("id DESC").
		First(cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart by user: %w", err)
	}
	return cart, nil
}

// FindActiveByUser retrieves the user's active cart
func (r *cartRepository) FindActiveByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.CartStatusActive).
		First(cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find active cart by user: %w", err)
	}
	return cart, nil
}

// CreateItem inserts a new line item row
func (r *cartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateItem persists quantity and status changes to an existing line item
func (r *cartRepository) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	result := r.db.WithContext(ctx).Model(item).
		Updates(map[string]interface{}{"quantity": item.Quantity, "status": item.Status})
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// FindItem retrieves the line item for a product in a cart, regardless of
// the item's status.
func (r *cartRepository) FindItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error) {
	item := &domain.CartItem{}
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return item, nil
}

// ListActiveItems retrieves the active line items of a cart
func (r *cartRepository) ListActiveItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
	var items []*domain.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND status = ?", cartID, domain.CartStatusActive).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}
