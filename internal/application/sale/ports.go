package sale

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La venta (insert + enlace de visita +
// descuento de stock) se confirma o revierte como una sola unidad.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		visitRepo repository.VisitRepository,
		productRepo repository.ProductRepository,
	) error) error
}
