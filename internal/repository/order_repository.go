package repository

import (
	"context"
	"errors"
	"fmt"

	"gomarket/internal/domain"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access. Orders are
// write-once: there is no update path.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Order, error)
	FindByIDForOwner(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order row
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListByOwner retrieves a user's orders with the purchased cart, its line
// items, and their products preloaded.
func (r *orderRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Cart.Items.Product").
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByIDForOwner retrieves one of a user's orders by id, preloaded like
// ListByOwner. Orders of other users are treated as absent.
func (r *orderRepository) FindByIDForOwner(ctx context.Context, id, userID int64) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Cart.Items.Product").
		First(order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by id: %w", err)
	}
	return order, nil
}
