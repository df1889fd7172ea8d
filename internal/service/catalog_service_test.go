package service

import (
	"context"
	"errors"
	"testing"

	"gomarket/internal/domain"
	"gomarket/internal/repository"

	"github.com/shopspring/decimal"
)

func newCatalogFixture(t *testing.T) (CatalogService, *mockProductRepository, *domain.Category) {
	t.Helper()

	productRepo := newMockProductRepository()
	categoryRepo := newMockCategoryRepository()
	service := NewCatalogService(productRepo, categoryRepo)

	category, err := service.CreateCategory(context.Background(), "electronics")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return service, productRepo, category
}

func TestCreateProductRequiresActiveCategory(t *testing.T) {
	service, _, category := newCatalogFixture(t)
	ctx := context.Background()
	seller := &domain.User{ID: 7, Role: "seller", Status: domain.UserStatusActive}

	product, err := service.CreateProduct(ctx, seller, "keyboard", "mechanical", decimal.RequireFromString("49.99"), 10, category.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.UserID != seller.ID || product.Status != domain.ProductStatusActive {
		t.Fatalf("unexpected product state: owner=%d status=%s", product.UserID, product.Status)
	}

	_, err = service.CreateProduct(ctx, seller, "mouse", "", decimal.RequireFromString("19.99"), 5, category.ID+1)
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for unknown category, got %v", err)
	}
}

func TestUpdateProductRequiresOwnership(t *testing.T) {
	service, _, category := newCatalogFixture(t)
	ctx := context.Background()
	seller := &domain.User{ID: 7, Role: "seller", Status: domain.UserStatusActive}
	intruder := &domain.User{ID: 8, Role: "seller", Status: domain.UserStatusActive}

	product, err := service.CreateProduct(ctx, seller, "keyboard", "mechanical", decimal.RequireFromString("49.99"), 10, category.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTitle := "hijacked"
	if _, err := service.UpdateProduct(ctx, intruder, product.ID, ProductUpdate{Title: &newTitle}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := service.DeleteProduct(ctx, intruder, product.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}

	newPrice := decimal.RequireFromString("59.99")
	updated, err := service.UpdateProduct(ctx, seller, product.ID, ProductUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Fatalf("price not updated: %s", updated.Price)
	}
	if updated.Title != "keyboard" {
		t.Fatalf("nil fields must stay unchanged, got title %q", updated.Title)
	}
}

func TestDeletedProductsDisappearFromListings(t *testing.T) {
	service, _, category := newCatalogFixture(t)
	ctx := context.Background()
	seller := &domain.User{ID: 7, Role: "seller", Status: domain.UserStatusActive}

	kept, err := service.CreateProduct(ctx, seller, "keyboard", "", decimal.RequireFromString("49.99"), 10, category.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dropped, err := service.CreateProduct(ctx, seller, "mouse", "", decimal.RequireFromString("19.99"), 5, category.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.DeleteProduct(ctx, seller, dropped.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := service.GetProduct(ctx, dropped.ID); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("deleted product should read as absent, got %v", err)
	}

	products, err := service.ListProducts(ctx)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != kept.ID {
		t.Fatalf("listing should hold only the kept product, got %d entries", len(products))
	}

	own, err := service.ListOwnProducts(ctx, seller)
	if err != nil {
		t.Fatalf("own listing failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != kept.ID {
		t.Fatalf("own listing should hold only the kept product, got %d entries", len(own))
	}
}

func TestRenameCategory(t *testing.T) {
	service, _, category := newCatalogFixture(t)
	ctx := context.Background()

	renamed, err := service.RenameCategory(ctx, category.ID, "peripherals")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "peripherals" {
		t.Fatalf("expected renamed category, got %q", renamed.Name)
	}

	if _, err := service.RenameCategory(ctx, category.ID+1, "ghost"); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
