package service

import (
	"errors"

	"gomarket/internal/domain"
)

var ErrNotOwner = errors.New("acting user is not the owner of this resource")

// RequireOwner gates mutation of an owned entity to the user that owns it.
func RequireOwner(entity domain.Owned, actingUserID int64) error {
	if entity.OwnerID() != actingUserID {
		return ErrNotOwner
	}
	return nil
}
