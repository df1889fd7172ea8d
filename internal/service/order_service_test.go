package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gomarket/internal/domain"
	"gomarket/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

type purchaseFixture struct {
	orderRepo   *mockOrderRepository
	cartRepo    *mockCartRepository
	productRepo *mockProductRepository
	cart        CartService
	orders      OrderService
	user        *domain.User
}

func newPurchaseFixture() *purchaseFixture {
	orderRepo := newMockOrderRepository()
	cartRepo := newMockCartRepository()
	productRepo := newMockProductRepository()
	return &purchaseFixture{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cart:        NewCartService(cartRepo, productRepo),
		orders:      NewOrderService(orderRepo, cartRepo, productRepo),
		user:        &domain.User{ID: 1, Status: domain.UserStatusActive},
	}
}

func (f *purchaseFixture) listProduct(price string, stock int) *domain.Product {
	product := &domain.Product{
		Title:    "widget",
		Price:    decimal.RequireFromString(price),
		Quantity: stock,
		UserID:   99,
		Status:   domain.ProductStatusActive,
	}
	_ = f.productRepo.Create(context.Background(), product)
	return product
}

func TestPurchaseWithoutCartFails(t *testing.T) {
	f := newPurchaseFixture()

	_, err := f.orders.Purchase(context.Background(), f.user)
	if !errors.Is(err, repository.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestPurchaseEmptyCartFails(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	product := f.listProduct("10.00", 5)
	if _, err := f.cart.AddItem(ctx, f.user, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := f.cart.RemoveItem(ctx, f.user, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	_, err := f.orders.Purchase(ctx, f.user)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	// A failed purchase of an empty cart touches nothing
	stored, err := f.productRepo.FindActiveByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if stored.Quantity != 5 {
		t.Fatalf("stock changed on empty-cart purchase: %d", stored.Quantity)
	}
	if orders, _ := f.orderRepo.ListByOwner(ctx, f.user.ID); len(orders) != 0 {
		t.Fatalf("order written on empty-cart purchase")
	}
	if cart, err := f.cartRepo.FindActiveByUser(ctx, f.user.ID); err != nil || cart.Status != domain.CartStatusActive {
		t.Fatalf("cart should stay active, got %v %v", cart, err)
	}
}

func TestPurchaseSettlesCart(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	productA := f.listProduct("10.00", 5)
	productB := f.listProduct("5.50", 4)

	if _, err := f.cart.AddItem(ctx, f.user, productA.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.cart.AddItem(ctx, f.user, productB.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := f.orders.Purchase(ctx, f.user)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	// 10.00*2 + 5.50*3 = 36.50, exactly
	want := decimal.RequireFromString("36.50")
	if !order.TotalPrice.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.TotalPrice)
	}

	// Stock is decremented per item
	storedA, _ := f.productRepo.FindActiveByID(ctx, productA.ID)
	storedB, _ := f.productRepo.FindActiveByID(ctx, productB.ID)
	if storedA.Quantity != 3 || storedB.Quantity != 1 {
		t.Fatalf("unexpected remaining stock: A=%d B=%d", storedA.Quantity, storedB.Quantity)
	}

	// The cart and its items are terminal
	if _, err := f.cartRepo.FindActiveByUser(ctx, f.user.ID); !errors.Is(err, repository.ErrCartNotFound) {
		t.Fatalf("purchased cart should no longer be active: %v", err)
	}
	itemA, _ := f.cartRepo.FindItem(ctx, order.CartID, productA.ID)
	itemB, _ := f.cartRepo.FindItem(ctx, order.CartID, productB.ID)
	if itemA.Status != domain.CartStatusPurchased || itemB.Status != domain.CartStatusPurchased {
		t.Fatalf("items should be purchased, got %s and %s", itemA.Status, itemB.Status)
	}

	// The order row is written before Purchase returns
	stored, err := f.orderRepo.FindByIDForOwner(ctx, order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("order should be persisted: %v", err)
	}
	if !stored.TotalPrice.Equal(want) {
		t.Fatalf("persisted total mismatch: %s", stored.TotalPrice)
	}
}

func TestPurchaseFailsWhenStockRanOut(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	product := f.listProduct("10.00", 5)
	if _, err := f.cart.AddItem(ctx, f.user, product.ID, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Another purchase drains the stock between add and purchase
	if err := f.productRepo.DecrementStock(ctx, product.ID, 3); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}

	_, err := f.orders.Purchase(ctx, f.user)
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// Stock is untouched by the failed guard and no order is written
	stored, _ := f.productRepo.FindActiveByID(ctx, product.ID)
	if stored.Quantity != 2 {
		t.Fatalf("failed purchase must not change stock, got %d", stored.Quantity)
	}
	if orders, _ := f.orderRepo.ListByOwner(ctx, f.user.ID); len(orders) != 0 {
		t.Fatalf("order written despite failed purchase")
	}
}

func TestPurchaseFreshCartStartsEmpty(t *testing.T) {
	f := newPurchaseFixture()
	ctx := context.Background()

	product := f.listProduct("10.00", 10)
	if _, err := f.cart.AddItem(ctx, f.user, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := f.orders.Purchase(ctx, f.user); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	// The next add opens a new cart rather than resurrecting the purchased one
	item, err := f.cart.AddItem(ctx, f.user, product.ID, 2)
	if err != nil {
		t.Fatalf("add after purchase failed: %v", err)
	}
	cart, err := f.cartRepo.FindActiveByUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("cart lookup failed: %v", err)
	}
	items, err := f.cartRepo.ListActiveItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("item listing failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID || items[0].Quantity != 2 {
		t.Fatalf("new cart should hold only the fresh item, got %d items", len(items))
	}
}

func TestProperty_PurchaseTotalsAreExact(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("the order total is the exact sum of price times quantity", prop.ForAll(
		func(cents []int, quantities []int) bool {
			if len(cents) == 0 {
				return true
			}
			if len(quantities) < len(cents) {
				return true
			}

			f := newPurchaseFixture()
			ctx := context.Background()

			want := decimal.Zero
			for i, c := range cents {
				quantity := quantities[i]%5 + 1
				price := fmt.Sprintf("%d.%02d", c/100, c%100)
				product := f.listProduct(price, quantity)

				if _, err := f.cart.AddItem(ctx, f.user, product.ID, quantity); err != nil {
					t.Logf("FAIL: add failed: %v", err)
					return false
				}
				want = want.Add(decimal.RequireFromString(price).Mul(decimal.NewFromInt(int64(quantity))))
			}

			order, err := f.orders.Purchase(ctx, f.user)
			if err != nil {
				t.Logf("FAIL: purchase failed: %v", err)
				return false
			}

			if !order.TotalPrice.Equal(want) {
				t.Logf("FAIL: expected total %s, got %s", want, order.TotalPrice)
				return false
			}

			return true
		},
		gen.SliceOfN(4, gen.IntRange(1, 99999)),
		gen.SliceOfN(4, gen.IntRange(0, 100)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
