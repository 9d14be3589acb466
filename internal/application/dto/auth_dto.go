package dto

import (
	"time"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// LoginRequest entrada para login contra la tienda seleccionada.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
	StoreID  string `json:"store_id" validate:"required,uuid"`
}

// LoginResponse salida con token JWT y el contexto de sesión.
type LoginResponse struct {
	Token string        `json:"token"`
	User  UserResponse  `json:"user"`
	Store StoreResponse `json:"store"`
}

// RegisterRequest entrada para dar de alta un vendedor (solo dueño).
type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	StoreID  string `json:"store_id" validate:"required,uuid"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id,omitempty"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse mapea la entidad a la respuesta pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		StoreID:   u.StoreID,
		Login:     u.Login,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ToStoreResponse mapea la entidad a la respuesta pública.
func ToStoreResponse(s *entity.Store) StoreResponse {
	return StoreResponse{ID: s.ID, Name: s.Name, Address: s.Address}
}
