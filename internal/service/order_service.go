package service

import (
	"context"
	"errors"

	"gomarket/internal/domain"
	"gomarket/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrCartEmpty = errors.New("no products in the cart")

// OrderService defines the interface for order business logic
type OrderService interface {
	// Purchase converts the user's active cart into an order: every active
	// line item is priced and marked purchased, stock is decremented, the
	// cart becomes purchased, and the order row is written before returning.
	Purchase(ctx context.Context, user *domain.User) (*domain.Order, error)
	ListOrders(ctx context.Context, user *domain.User) ([]*domain.Order, error)
	GetOrder(ctx context.Context, user *domain.User, id int64) (*domain.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Purchase settles the user's active cart. Line items are settled
// concurrently; each item's stock decrement is a single conditional update,
// so stock never goes negative even under concurrent purchases of the same
// product. There is no cross-item transaction: when one item fails after
// others have settled, the settled items stay settled and no order is
// written.
func (s *orderService) Purchase(ctx context.Context, user *domain.User) (*domain.Order, error) {
	cart, err := s.cartRepo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListActiveItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	itemTotals := make([]decimal.Decimal, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			product, err := s.productRepo.FindActiveByID(gctx, item.ProductID)
			if err != nil {
				return err
			}

			if err := s.productRepo.DecrementStock(gctx, product.ID, item.Quantity); err != nil {
				return err
			}

			item.Status = domain.CartStatusPurchased
			if err := s.cartRepo.UpdateItem(gctx, item); err != nil {
				return err
			}

			itemTotals[i] = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cart.Status = domain.CartStatusPurchased
	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, err
	}

	totalPrice := decimal.Zero
	for _, t := range itemTotals {
		totalPrice = totalPrice.Add(t)
	}

	order := &domain.Order{
		UserID:     user.ID,
		CartID:     cart.ID,
		TotalPrice: totalPrice,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retrieves the user's orders with their cart contents
func (s *orderService) ListOrders(ctx context.Context, user *domain.User) ([]*domain.Order, error) {
	return s.orderRepo.ListByOwner(ctx, user.ID)
}

// GetOrder retrieves one of the user's orders by id
func (s *orderService) GetOrder(ctx context.Context, user *domain.User, id int64) (*domain.Order, error) {
	return s.orderRepo.FindByIDForOwner(ctx, id, user.ID)
}
