package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain"
)

// respondError es la tabla compartida de todos los handlers: el mismo error
// de dominio debe salir siempre con el mismo status y código.
func TestRespondError_MapeoDeErroresDeDominio(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"offline", domain.ErrOffline, fiber.StatusServiceUnavailable, "OFFLINE"},
		{"demasiado pronto", domain.ErrTooSoon, fiber.StatusTooManyRequests, "TOO_SOON"},
		{"operación en curso", domain.ErrOperationInFlight, fiber.StatusConflict, "IN_FLIGHT"},
		{"turno ya abierto", domain.ErrShiftAlreadyOpen, fiber.StatusConflict, "SHIFT_OPEN"},
		{"sin turno", domain.ErrNoActiveShift, fiber.StatusConflict, "NO_SHIFT"},
		{"stock insuficiente", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"login tomado", domain.ErrLoginAlreadyTaken, fiber.StatusConflict, "LOGIN_EXISTS"},
		{"recibo duplicado", domain.ErrDuplicateReceipt, fiber.StatusConflict, "DUPLICATE_RECEIPT"},
		{"carrito vacío", domain.ErrEmptyCart, fiber.StatusBadRequest, "VALIDATION"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"desconocido", io.ErrUnexpectedEOF, fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return respondError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}
