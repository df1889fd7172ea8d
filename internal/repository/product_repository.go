package repository

import (
	"context"
	"errors"
	"fmt"

	"gomarket/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock for product")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindActiveByID(ctx context.Context, id int64) (*domain.Product, error)
	ListActive(ctx context.Context) ([]*domain.Product, error)
	ListActiveByOwner(ctx context.Context, userID int64) ([]*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product row
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists changes to an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// FindActiveByID retrieves an active product by id. Soft-deleted products
// are treated as absent.
func (r *productRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.ProductStatusActive).
		First(product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}
	return product, nil
}

// ListActive retrieves all active products
func (r *productRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.ProductStatusActive).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListActiveByOwner retrieves the active products listed by a user
func (r *productRepository) ListActiveByOwner(ctx context.Context, userID int64) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.ProductStatusActive).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by owner: %w", err)
	}
	return products, nil
}

// DecrementStock atomically subtracts quantity from a product's stock. The
// guard clause keeps stock from going negative: when the remaining stock is
// lower than the requested quantity no row matches and ErrInsufficientStock
// is returned.
func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND status = ? AND quantity >= ?", id, domain.ProductStatusActive, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
