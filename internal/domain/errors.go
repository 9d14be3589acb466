package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrLoginAlreadyTaken = errors.New("el login ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrOffline           = errors.New("sin conexión: operación de escritura deshabilitada")
	ErrShiftAlreadyOpen  = errors.New("ya existe un turno activo")
	ErrNoActiveShift     = errors.New("no hay turno activo")
	ErrTooSoon           = errors.New("espera un momento antes de reintentar")
	ErrOperationInFlight = errors.New("ya hay una operación en curso")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrInvalidAmount     = errors.New("el monto debe ser mayor que cero")
	ErrInvalidPayment    = errors.New("método de pago inválido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrDuplicateReceipt señala el reenvío de un ticket ya confirmado: el
	// número de recibo es único en la base.
	ErrDuplicateReceipt = errors.New("el número de recibo ya existe")
	// ErrGateway es el error genérico que los casos de uso devuelven al
	// caller cuando falla la base de datos: el error de transporte crudo
	// nunca sube a la capa HTTP.
	ErrGateway = errors.New("error de comunicación con la base de datos")
	// ErrSchemaMismatch lo devuelve el adaptador de turnos cuando el
	// esquema no tiene la columna active (se usa el fallback por end_time).
	ErrSchemaMismatch = errors.New("esquema sin columna active")
)
