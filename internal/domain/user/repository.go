package user

import (
	"context"
)

// Repository persists accounts. Create returns ErrAlreadyExists when the email
// is taken and FindByEmail returns ErrNotFound when it is not.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
}
