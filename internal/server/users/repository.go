package users

import (
	"context"
)

// Repository stores portal accounts keyed by username.
//
// Create fails with shared.ErrorAlreadyExists for a taken username and
// fills in ID and CreatedAt. GetByUsername fails with shared.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
