// Package sale implementa el flujo de dos fases "crear visita → completar
// venta → enlazar visita", con guardas de debounce contra envíos duplicados.
package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/diagnostics"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// Ventanas de enfriamiento contra taps duplicados. La de venta es mayor
// porque ese camino hace más trabajo.
const (
	VisitCooldown = 2 * time.Second
	SaleCooldown  = 3 * time.Second
)

// Coordinator serializa el flujo visita→venta y evita envíos duplicados
// bajo entrada repetida rápida del usuario.
type Coordinator struct {
	tx      TxRunner
	visits  repository.VisitRepository
	sales   repository.SaleRepository
	monitor *connectivity.Monitor
	diag    *diagnostics.Reporter
	log     *logger.Logger

	now func() time.Time
}

// NewCoordinator construye el coordinador de visitas y ventas.
func NewCoordinator(
	tx TxRunner,
	visits repository.VisitRepository,
	sales repository.SaleRepository,
	monitor *connectivity.Monitor,
	diag *diagnostics.Reporter,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		tx:      tx,
		visits:  visits,
		sales:   sales,
		monitor: monitor,
		diag:    diag,
		log:     log,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// CreateVisit crea el marcador de una venta en curso. La etiqueta es
// secuencial sobre el conteo actual de visitas de la tienda (contar y
// etiquetar; no es estrictamente libre de carreras entre sesiones, pero las
// visitas son por sesión de vendedor en la práctica).
func (c *Coordinator) CreateVisit(ctx context.Context, s *session.Session) (*entity.Visit, error) {
	if !c.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	if err := s.TryBeginVisit(c.now(), VisitCooldown); err != nil {
		return nil, err
	}
	defer s.EndVisitOp()

	storeID := s.StoreID()
	count, err := c.visits.CountByStore(ctx, storeID)
	if err != nil {
		c.log.Error().Err(err).Str("store_id", storeID).Msg("crear visita: contar")
		c.report("create_visit.count", s, err)
		return nil, domain.ErrGateway
	}

	visit := &entity.Visit{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		SellerID:   s.User().ID,
		Title:      fmt.Sprintf("Visita #%d", count+1),
		SaleAmount: decimal.Zero,
		CreatedAt:  c.now(),
	}
	if err := c.visits.Create(ctx, visit); err != nil {
		c.log.Error().Err(err).Str("store_id", storeID).Msg("crear visita: insertar")
		c.report("create_visit.insert", s, err)
		return nil, domain.ErrGateway
	}

	s.AppendVisit(*visit)
	c.log.Info().Str("visit_id", visit.ID).Str("title", visit.Title).Msg("visita creada")
	return visit, nil
}

// CompleteSaleInput entrada para completar una venta sobre una visita abierta.
type CompleteSaleInput struct {
	VisitID       string
	Items         []entity.SaleItem
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	PaymentMethod string
}

// CompleteSaleResult lo que el caller necesita para renderizar el recibo.
type CompleteSaleResult struct {
	SaleID        string
	ReceiptNumber string
	PaymentMethod string
}

// CompleteSale valida, toma la guarda de debounce y confirma la venta en una
// sola transacción: insert de la venta, enlace de la visita y descuento
// condicional de stock por ítem. Si algún producto no tiene stock
// suficiente, todo se revierte.
func (c *Coordinator) CompleteSale(ctx context.Context, s *session.Session, in CompleteSaleInput) (*CompleteSaleResult, error) {
	if err := c.validate(s, in); err != nil {
		return nil, err
	}
	if !c.monitor.IsOnline() {
		return nil, domain.ErrOffline
	}
	now := c.now()
	if err := s.TryBeginSale(now, SaleCooldown); err != nil {
		return nil, err
	}
	defer s.EndSaleOp()

	row := &entity.Sale{
		ID:            uuid.New().String(),
		StoreID:       s.StoreID(),
		SellerID:      s.User().ID,
		ReceiptNumber: NewReceiptNumber(now),
		TotalAmount:   in.TotalAmount,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
		Items:         in.Items,
		CreatedAt:     now,
	}

	err := c.tx.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		visitRepo repository.VisitRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.Create(ctx, row); err != nil {
			return err
		}
		if err := visitRepo.Link(ctx, in.VisitID, row.ID, in.TotalAmount, in.PaymentMethod); err != nil {
			return err
		}
		for _, it := range in.Items {
			if err := productRepo.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, domain.ErrInsufficientStock
		}
		if errors.Is(err, domain.ErrDuplicateReceipt) {
			return nil, domain.ErrDuplicateReceipt
		}
		c.log.Error().Err(err).Str("visit_id", in.VisitID).Msg("completar venta")
		c.report("complete_sale.tx", s, err)
		return nil, domain.ErrGateway
	}

	// Reflejar en memoria lo ya confirmado en la base.
	s.LinkVisit(in.VisitID, row.ID, in.TotalAmount, in.PaymentMethod)
	for _, it := range in.Items {
		s.ApplyStockDecrement(it.ProductID, it.Quantity)
	}
	c.refreshSales(ctx, s)

	c.log.Info().
		Str("sale_id", row.ID).
		Str("receipt", row.ReceiptNumber).
		Str("total", in.TotalAmount.String()).
		Msg("venta completada")

	return &CompleteSaleResult{
		SaleID:        row.ID,
		ReceiptNumber: row.ReceiptNumber,
		PaymentMethod: in.PaymentMethod,
	}, nil
}

// validate aplica las validaciones previas a cualquier I/O: carrito no
// vacío, montos coherentes con el invariante de la venta, método de pago
// del enum cerrado y chequeo de sobreventa contra el stock en memoria.
func (c *Coordinator) validate(s *session.Session, in CompleteSaleInput) error {
	if in.VisitID == "" {
		return domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	if !in.TotalAmount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return domain.ErrInvalidPayment
	}
	if in.Discount.LessThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	// Suma de líneas, neta del descuento, debe igualar el total.
	lines := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		lines = lines.Add(it.Total)
	}
	if !lines.Sub(in.Discount).Equal(in.TotalAmount) {
		return domain.ErrInvalidAmount
	}

	// Sobreventa: se rechaza antes de enviar nada. El descuento condicional
	// dentro de la transacción es la segunda línea de defensa.
	needed := make(map[string]int64, len(in.Items))
	for _, it := range in.Items {
		needed[it.ProductID] += it.Quantity
	}
	for productID, qty := range needed {
		if available, known := s.ProductQuantity(productID); known && available < qty {
			return domain.ErrInsufficientStock
		}
	}
	return nil
}

// refreshSales recarga la lista de ventas desde la fuente de verdad. Un
// fallo aquí no deshace la venta ya confirmada: solo se registra.
func (c *Coordinator) refreshSales(ctx context.Context, s *session.Session) {
	var (
		sales []entity.Sale
		err   error
	)
	if s.User().IsOwner() {
		sales, err = c.sales.ListAll(ctx)
	} else {
		sales, err = c.sales.ListByStore(ctx, s.StoreID())
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("refrescar ventas tras completar")
		return
	}
	s.SetSales(sales)
}

func (c *Coordinator) report(op string, s *session.Session, err error) {
	if c.diag == nil {
		return
	}
	c.diag.Report(diagnostics.Event{
		Operation: op,
		Message:   "gateway error",
		UserID:    s.User().ID,
		StoreID:   s.StoreID(),
		Detail:    err.Error(),
	})
}
