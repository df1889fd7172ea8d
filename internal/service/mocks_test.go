package service

import (
	"context"
	"sync"

	"gomarket/internal/domain"
	"gomarket/internal/repository"
)

// Mock repositories for testing. Purchases settle line items concurrently,
// so the product and cart mocks guard their state with a mutex.

type mockUserRepository struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	user, exists := m.users[id]
	if !exists || user.Status != domain.UserStatusActive {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email && user.Status == domain.UserStatusActive {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.ID]; !exists {
		return repository.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domain.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists || product.Status != domain.ProductStatusActive {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []*domain.Product
	for _, p := range m.products {
		if p.Status == domain.ProductStatusActive {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *mockProductRepository) ListActiveByOwner(ctx context.Context, userID int64) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var products []*domain.Product
	for _, p := range m.products {
		if p.UserID == userID && p.Status == domain.ProductStatusActive {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists || product.Status != domain.ProductStatusActive || product.Quantity < quantity {
		return repository.ErrInsufficientStock
	}
	product.Quantity -= quantity
	return nil
}

type mockCategoryRepository struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int64]*domain.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists || category.Status != domain.CategoryStatusActive {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, c := range m.categories {
		if c.Status == domain.CategoryStatusActive {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

type mockCartRepository struct {
	mu         sync.Mutex
	carts      map[int64]*domain.Cart
	items      map[int64]*domain.CartItem
	nextCartID int64
	nextItemID int64
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts:      make(map[int64]*domain.Cart),
		items:      make(map[int64]*domain.CartItem),
		nextCartID: 1,
		nextItemID: 1,
	}
}

func (m *mockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart.ID = m.nextCartID
	m.nextCartID++
	m.carts[cart.ID] = cart
	return nil
}

func (m *mockCartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.carts[cart.ID]
	if !exists {
		return repository.ErrCartNotFound
	}
	stored.Status = cart.Status
	return nil
}

func (m *mockCartRepository) FindCurrentByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.Cart
	for _, cart := range m.carts {
		if cart.UserID != userID {
			continue
		}
		if cart.Status != domain.CartStatusActive && cart.Status != domain.CartStatusRemoved {
			continue
		}
		if latest == nil || cart.ID > latest.ID {
			latest = cart
		}
	}
	if latest == nil {
		return nil, repository.ErrCartNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *mockCartRepository) FindActiveByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.UserID == userID && cart.Status == domain.CartStatusActive {
			copied := *cart
			return &copied, nil
		}
	}
	return nil, repository.ErrCartNotFound
}

func (m *mockCartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextItemID
	m.nextItemID++
	m.items[item.ID] = item
	return nil
}

func (m *mockCartRepository) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.items[item.ID]
	if !exists {
		return repository.ErrCartItemNotFound
	}
	stored.Quantity = item.Quantity
	stored.Status = item.Status
	return nil
}

func (m *mockCartRepository) FindItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (m *mockCartRepository) ListActiveItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*domain.CartItem
	for _, item := range m.items {
		if item.CartID == cartID && item.Status == domain.CartStatusActive {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		orders: make(map[int64]*domain.Order),
		nextID: 1,
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) FindByIDForOwner(ctx context.Context, id, userID int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, exists := m.orders[id]
	if !exists || order.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}
