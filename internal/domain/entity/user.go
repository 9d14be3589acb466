package entity

import "time"

// Roles de usuario. El dueño ve todas las tiendas; el vendedor solo la suya.
const (
	RoleOwner  = "owner"
	RoleSeller = "seller"
)

// User representa un usuario del sistema (dueño o vendedor).
type User struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id,omitempty"` // vacío para el dueño
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // owner | seller
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsOwner indica si el usuario tiene rol de dueño.
func (u *User) IsOwner() bool { return u.Role == RoleOwner }
