package repository

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// StoreRepository define el puerto de lectura de tiendas.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context) ([]entity.Store, error)
}
