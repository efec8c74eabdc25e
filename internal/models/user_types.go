package models

// Roles a shop account can have.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account returned by /auth/me.
type User struct {
	ID            int64  `json:"id" validate:"gt=0"`
	Username      string `json:"username"`
	Email         string `json:"email" validate:"required"`
	Role          string `json:"role" validate:"oneof=user admin"`
	EmailVerified bool   `json:"emailVerified"`
	CartID        *int64 `json:"cartId,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
