package domain

import "time"

// Cart and cart item statuses. A removed cart can be revived to active on
// the next add; purchased is terminal.
const (
	CartStatusActive    = "active"
	CartStatusRemoved   = "removed"
	CartStatusPurchased = "purchased"
)

// Cart is a user's shopping cart. At most one non-purchased cart exists per
// user; the storage layer enforces this with a partial unique index on
// carts(user_id) for the active status.
type Cart struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id"`
	Status    string     `json:"status"`
	Items     []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OwnerID implements Owned.
func (c *Cart) OwnerID() int64 {
	return c.UserID
}

// CartItem is a single product entry within a cart, with its own requested
// quantity and lifecycle status. One row exists per (cart, product); adding
// a product that is already active in the cart is a conflict, not a merge.
type CartItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CartID    int64     `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
