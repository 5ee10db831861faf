package auth

import "context"

// UserRepository defines data access for API users (admins, kiosks).
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
