package usecase

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// ProductUseCase lecturas del catálogo de productos.
type ProductUseCase struct {
	products repository.ProductRepository
	monitor  *connectivity.Monitor
	log      *logger.Logger
}

// NewProductUseCase crea el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, monitor *connectivity.Monitor, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, monitor: monitor, log: log}
}

// ListProducts devuelve el catálogo visible para el usuario: el dueño ve
// todas las tiendas, el vendedor solo la suya.
func (uc *ProductUseCase) ListProducts(ctx context.Context, viewer *entity.User, storeID string) ([]entity.Product, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	var (
		products []entity.Product
		err      error
	)
	if viewer != nil && viewer.IsOwner() {
		products, err = uc.products.ListAll(ctx)
	} else {
		products, err = uc.products.ListByStore(ctx, storeID)
	}
	if err != nil {
		uc.log.Error().Err(err).Str("store_id", storeID).Msg("error listando productos")
		return nil, domain.ErrGateway
	}
	return products, nil
}

// GetProduct devuelve un producto por id.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if !uc.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", id).Msg("error cargando producto")
		return nil, domain.ErrGateway
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
