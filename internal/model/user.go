package model

import "time"

// User is an operator account for the admin surface.  Customers book
// without an account; only room and screening management requires login.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role, currently always ADMIN
	CreatedAt    time.Time // users.created_at
}
