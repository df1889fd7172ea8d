package domain

import "time"

// User statuses. A deleted user is a soft-delete marker; deleted users are
// excluded from authentication.
const (
	UserStatusActive  = "active"
	UserStatusDeleted = "deleted"
)

// User represents a registered account
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID implements Owned: a user account is owned by itself.
func (u *User) OwnerID() int64 {
	return u.ID
}

// Owned is implemented by entities that belong to the user that created
// them. Mutation of an Owned entity requires the acting user to match.
type Owned interface {
	OwnerID() int64
}
