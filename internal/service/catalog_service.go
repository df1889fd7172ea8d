package service

import (
	"context"

	"gomarket/internal/domain"
	"gomarket/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductUpdate carries the mutable product fields. Nil fields are left
// unchanged.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// CatalogService defines the interface for product and category business
// logic. Listings and lookups only ever see active rows; product mutation is
// gated to the owner.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListOwnProducts(ctx context.Context, user *domain.User) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, owner *domain.User, title, description string, price decimal.Decimal, quantity int, categoryID int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actingUser *domain.User, id int64, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actingUser *domain.User, id int64) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts retrieves all active products
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// GetProduct retrieves an active product by id
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindActiveByID(ctx, id)
}

// ListOwnProducts retrieves the acting user's active products
func (s *catalogService) ListOwnProducts(ctx context.Context, user *domain.User) ([]*domain.Product, error) {
	return s.productRepo.ListActiveByOwner(ctx, user.ID)
}

// CreateProduct lists a new active product owned by the acting user. The
// category must exist and be active.
func (s *catalogService) CreateProduct(ctx context.Context, owner *domain.User, title, description string, price decimal.Decimal, quantity int, categoryID int64) (*domain.Product, error) {
	if _, err := s.categoryRepo.FindActiveByID(ctx, categoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Title:       title,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		CategoryID:  categoryID,
		UserID:      owner.ID,
		Status:      domain.ProductStatusActive,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct applies the given field changes to an active product owned
// by the acting user.
func (s *catalogService) UpdateProduct(ctx context.Context, actingUser *domain.User, id int64, update ProductUpdate) (*domain.Product, error) {
	product, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := RequireOwner(product, actingUser.ID); err != nil {
		return nil, err
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes an active product owned by the acting user
func (s *catalogService) DeleteProduct(ctx context.Context, actingUser *domain.User, id int64) error {
	product, err := s.productRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	if err := RequireOwner(product, actingUser.ID); err != nil {
		return err
	}

	product.Status = domain.ProductStatusDeleted
	return s.productRepo.Update(ctx, product)
}

// ListCategories retrieves all active categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// CreateCategory creates a new active category
func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{
		Name:   name,
		Status: domain.CategoryStatusActive,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// RenameCategory renames an active category
func (s *catalogService) RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
