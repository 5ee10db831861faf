package auth

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleKiosk Role = "kiosk"
)

// User is an account that can call the API: a factory administrator or
// a kiosk device. Workers themselves do not log in.
type User struct {
	ID           string
	FactoryID    string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
