package repository

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByLogin busca por login normalizado. Devuelve nil sin error si no existe.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, id string) error
}
