package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses. Deletion is a soft delete; deleted products are excluded
// from every listing and lookup.
const (
	ProductStatusActive  = "active"
	ProductStatusDeleted = "deleted"
)

const CategoryStatusActive = "active"

// Product represents a catalog product owned by the user that listed it.
// Price is fixed-point with two decimals; Quantity is the available stock
// and never goes negative.
type Product struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2)"`
	Quantity    int             `json:"quantity"`
	CategoryID  int64           `json:"category_id"`
	UserID      int64           `json:"user_id"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OwnerID implements Owned.
func (p *Product) OwnerID() int64 {
	return p.UserID
}

// Category represents a product category
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
