package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the terminal artifact of a cart purchase. It is created once per
// successful purchase and never mutated.
type Order struct {
	ID         int64           `json:"id" gorm:"primaryKey"`
	UserID     int64           `json:"user_id"`
	CartID     int64           `json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:numeric(10,2)"`
	Cart       *Cart           `json:"cart,omitempty" gorm:"foreignKey:CartID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OwnerID implements Owned.
func (o *Order) OwnerID() int64 {
	return o.UserID
}
