// Package session contiene el estado de aplicación por usuario: el turno
// actual, las colecciones en memoria (ventas, visitas, productos) y las
// guardas de debounce/en-vuelo de las operaciones de venta. Toda mutación
// pasa por los métodos de Session; nada se expone como estado global.
package session

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// Session es el estado compartido de una sesión autenticada. En el cliente
// original este estado vivía en un provider único de UI monohilo; aquí los
// handlers corren concurrentes, así que el mutex cumple el papel que allí
// cumplía el event loop, y las guardas de debounce/en-vuelo siguen cubriendo
// la doble invocación del mismo usuario.
type Session struct {
	mu sync.Mutex

	user  *entity.User
	store *entity.Store

	shift    *entity.Shift
	sales    []entity.Sale
	visits   []entity.Visit
	products []entity.Product

	totalSales decimal.Decimal

	lastVisitAt   time.Time
	lastSaleAt    time.Time
	visitInFlight bool
	saleInFlight  bool

	pendingAutoClose bool
	autoCloseTimer   *time.Timer
}

// New crea la sesión de un usuario autenticado en una tienda.
func New(user *entity.User, store *entity.Store) *Session {
	return &Session{user: user, store: store, totalSales: decimal.Zero}
}

// User devuelve el usuario de la sesión.
func (s *Session) User() *entity.User { return s.user }

// Store devuelve la tienda seleccionada al iniciar sesión.
func (s *Session) Store() *entity.Store { return s.store }

// StoreID devuelve el id de la tienda de la sesión, o el del usuario.
func (s *Session) StoreID() string {
	if s.store != nil {
		return s.store.ID
	}
	return s.user.StoreID
}

// ── Turno ─────────────────────────────────────────────────────────────────────

// Shift devuelve el turno actual (nil = NoShift).
func (s *Session) Shift() *entity.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shift
}

// SetShift fija el turno actual.
func (s *Session) SetShift(shift *entity.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = shift
}

// PendingAutoClose indica si hay un cierre automático pendiente por falta de conexión.
func (s *Session) PendingAutoClose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingAutoClose
}

// SetPendingAutoClose marca o limpia la obligación de cierre automático diferido.
func (s *Session) SetPendingAutoClose(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingAutoClose = pending
}

// SetAutoCloseTimer reemplaza el timer de cierre por medianoche, cancelando el anterior.
func (s *Session) SetAutoCloseTimer(t *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoCloseTimer != nil {
		s.autoCloseTimer.Stop()
	}
	s.autoCloseTimer = t
}

// CancelAutoClose detiene el timer de cierre automático si existe.
func (s *Session) CancelAutoClose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoCloseTimer != nil {
		s.autoCloseTimer.Stop()
		s.autoCloseTimer = nil
	}
}

// Close cancela los timers de la sesión. Ningún timer sobrevive a su sesión.
func (s *Session) Close() {
	s.CancelAutoClose()
}

// ── Colecciones en memoria ────────────────────────────────────────────────────

// Sales devuelve una copia de la colección de ventas en memoria.
func (s *Session) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// SetSales reemplaza la colección de ventas y recalcula el total corriente.
func (s *Session) SetSales(sales []entity.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = sales
	total := decimal.Zero
	for _, sa := range sales {
		total = total.Add(sa.TotalAmount)
	}
	s.totalSales = total
}

// TotalSales devuelve el total corriente de las ventas en memoria.
func (s *Session) TotalSales() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSales
}

// Visits devuelve una copia de las visitas en memoria.
func (s *Session) Visits() []entity.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

// SetVisits reemplaza la colección de visitas.
func (s *Session) SetVisits(visits []entity.Visit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = visits
}

// AppendVisit agrega una visita recién creada.
func (s *Session) AppendVisit(v entity.Visit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, v)
}

// LinkVisit refleja en memoria el enlace visita-venta hecho en la base.
func (s *Session) LinkVisit(visitID, saleID string, amount decimal.Decimal, paymentMethod string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.visits {
		if s.visits[i].ID == visitID {
			id := saleID
			s.visits[i].SaleID = &id
			s.visits[i].SaleAmount = amount
			s.visits[i].PaymentMethod = paymentMethod
			return
		}
	}
}

// RemoveVisit quita una visita de la lista en memoria (tras verla); no toca la base.
func (s *Session) RemoveVisit(visitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.visits {
		if s.visits[i].ID == visitID {
			s.visits = append(s.visits[:i], s.visits[i+1:]...)
			return
		}
	}
}

// ClearVisits vacía las visitas en memoria (purga al abrir/cerrar turno).
func (s *Session) ClearVisits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = nil
}

// Products devuelve una copia de los productos en memoria.
func (s *Session) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// SetProducts reemplaza el catálogo en memoria.
func (s *Session) SetProducts(products []entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// ProductQuantity devuelve la cantidad en memoria de un producto y si se conoce.
func (s *Session) ProductQuantity(productID string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			return s.products[i].Quantity, true
		}
	}
	return 0, false
}

// ApplyStockDecrement refleja en memoria el descuento de stock ya confirmado
// en la base, con piso en cero.
func (s *Session) ApplyStockDecrement(productID string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].Quantity -= qty
			if s.products[i].Quantity < 0 {
				s.products[i].Quantity = 0
			}
			return
		}
	}
}

// ── Guardas de debounce / en-vuelo ────────────────────────────────────────────

// TryBeginVisit toma la guarda de creación de visita: rechaza llamadas
// solapadas (en vuelo) y llamadas dentro de la ventana de enfriamiento.
func (s *Session) TryBeginVisit(now time.Time, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visitInFlight {
		return domain.ErrOperationInFlight
	}
	if !s.lastVisitAt.IsZero() && now.Sub(s.lastVisitAt) < cooldown {
		return domain.ErrTooSoon
	}
	s.visitInFlight = true
	s.lastVisitAt = now
	return nil
}

// EndVisitOp libera la guarda de creación de visita.
func (s *Session) EndVisitOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitInFlight = false
}

// TryBeginSale toma la guarda de creación de venta (ventana mayor: este
// camino hace más trabajo).
func (s *Session) TryBeginSale(now time.Time, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saleInFlight {
		return domain.ErrOperationInFlight
	}
	if !s.lastSaleAt.IsZero() && now.Sub(s.lastSaleAt) < cooldown {
		return domain.ErrTooSoon
	}
	s.saleInFlight = true
	s.lastSaleAt = now
	return nil
}

// EndSaleOp libera la guarda de creación de venta.
func (s *Session) EndSaleOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saleInFlight = false
}
