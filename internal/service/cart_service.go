package service

import (
	"context"
	"errors"

	"gomarket/internal/domain"
	"gomarket/internal/repository"
)

var (
	ErrQuantityExceedsStock   = errors.New("requested quantity exceeds available stock")
	ErrProductAlreadyInCart   = errors.New("product is already in the cart")
	ErrCartItemAlreadyRemoved = errors.New("cart item has already been removed")
)

// CartService defines the interface for cart line item business logic. A
// user has at most one current cart; it is created lazily on the first add.
type CartService interface {
	AddItem(ctx context.Context, user *domain.User, productID int64, quantity int) (*domain.CartItem, error)
	UpdateItem(ctx context.Context, user *domain.User, productID int64, newQuantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, user *domain.User, productID int64) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts a product into the user's cart. The cart is created when
// absent and revived when previously removed. Re-adding a removed item
// overwrites its quantity; adding an active item is a conflict, quantities
// are never merged.
func (s *cartService) AddItem(ctx context.Context, user *domain.User, productID int64, quantity int) (*domain.CartItem, error) {
	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Quantity {
		return nil, ErrQuantityExceedsStock
	}

	cart, err := s.cartRepo.FindCurrentByUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			return nil, err
		}
		cart = &domain.Cart{UserID: user.ID, Status: domain.CartStatusActive}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			return nil, err
		}
	}

	if cart.Status == domain.CartStatusRemoved {
		cart.Status = domain.CartStatusActive
		if err := s.cartRepo.Update(ctx, cart); err != nil {
			return nil, err
		}
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, err
		}
		item = &domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Status:    domain.CartStatusActive,
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if item.Status == domain.CartStatusActive {
		return nil, ErrProductAlreadyInCart
	}

	item.Status = domain.CartStatusActive
	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem changes the requested quantity of a line item in the user's
// active cart. A new quantity of zero removes the item, with the same
// post-state as RemoveItem.
func (s *cartService) UpdateItem(ctx context.Context, user *domain.User, productID int64, newQuantity int) (*domain.CartItem, error) {
	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if newQuantity > product.Quantity {
		return nil, ErrQuantityExceedsStock
	}

	cart, err := s.cartRepo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}

	if newQuantity == 0 {
		item.Status = domain.CartStatusRemoved
		item.Quantity = 0
	} else {
		item.Status = domain.CartStatusActive
		item.Quantity = newQuantity
	}

	if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// RemoveItem drops a line item from the user's active cart. Removing an
// already-removed item is rejected rather than treated as a no-op.
func (s *cartService) RemoveItem(ctx context.Context, user *domain.User, productID int64) error {
	if _, err := s.productRepo.FindActiveByID(ctx, productID); err != nil {
		return err
	}

	cart, err := s.cartRepo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		return err
	}

	if item.Status == domain.CartStatusRemoved {
		return ErrCartItemAlreadyRemoved
	}

	item.Status = domain.CartStatusRemoved
	item.Quantity = 0
	return s.cartRepo.UpdateItem(ctx, item)
}
