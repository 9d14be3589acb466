package session

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// Loader refresca las colecciones en memoria de una sesión desde la fuente de
// verdad. El dueño ve todas las tiendas; el vendedor solo la suya.
type Loader struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	visits   repository.VisitRepository
	monitor  *connectivity.Monitor
	log      *logger.Logger
}

// NewLoader construye el loader de datos de sesión.
func NewLoader(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	visits repository.VisitRepository,
	monitor *connectivity.Monitor,
	log *logger.Logger,
) *Loader {
	return &Loader{products: products, sales: sales, visits: visits, monitor: monitor, log: log}
}

// Load trae productos, ventas y visitas según el rol y los deja en la
// sesión, recalculando el total corriente. Sin conexión no toca nada: las
// colecciones en memoria siguen sirviendo como lectura degradada.
func (l *Loader) Load(ctx context.Context, s *Session) error {
	if !l.monitor.IsOnline() {
		return domain.ErrOffline
	}

	var (
		products []entity.Product
		sales    []entity.Sale
		visits   []entity.Visit
		err      error
	)

	if s.User().IsOwner() {
		products, err = l.products.ListAll(ctx)
	} else {
		products, err = l.products.ListByStore(ctx, s.StoreID())
	}
	if err != nil {
		l.log.Error().Err(err).Msg("cargar productos")
		return domain.ErrGateway
	}

	if s.User().IsOwner() {
		sales, err = l.sales.ListAll(ctx)
	} else {
		sales, err = l.sales.ListByStore(ctx, s.StoreID())
	}
	if err != nil {
		l.log.Error().Err(err).Msg("cargar ventas")
		return domain.ErrGateway
	}

	if s.User().IsOwner() {
		visits, err = l.visits.ListAll(ctx)
	} else {
		visits, err = l.visits.ListByStore(ctx, s.StoreID())
	}
	if err != nil {
		l.log.Error().Err(err).Msg("cargar visitas")
		return domain.ErrGateway
	}

	s.SetProducts(products)
	s.SetSales(sales)
	s.SetVisits(visits)

	l.warnOrphans(sales, visits)
	return nil
}

// warnOrphans registra ventas sin visita enlazada. Política decidida: no se
// reparan automáticamente; quedan registradas para revisión manual. Solo se
// revisan ventas posteriores a la visita más antigua del tablero actual:
// las visitas de turnos cerrados se purgan, así que las ventas históricas
// no cuentan como huérfanas.
func (l *Loader) warnOrphans(sales []entity.Sale, visits []entity.Visit) {
	if len(visits) == 0 {
		return
	}
	oldest := visits[0].CreatedAt
	for i := range visits {
		if visits[i].CreatedAt.Before(oldest) {
			oldest = visits[i].CreatedAt
		}
	}
	linked := make(map[string]bool, len(visits))
	for i := range visits {
		if visits[i].SaleID != nil {
			linked[*visits[i].SaleID] = true
		}
	}
	for i := range sales {
		if sales[i].CreatedAt.Before(oldest) {
			continue
		}
		if !linked[sales[i].ID] {
			l.log.Warn().
				Str("sale_id", sales[i].ID).
				Str("receipt", sales[i].ReceiptNumber).
				Msg("venta sin visita enlazada: revisar manualmente")
		}
	}
}
