package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/stats"
)

// StatsHandler sirve las estadísticas derivadas de las ventas en memoria.
type StatsHandler struct {
	now func() time.Time
}

// NewStatsHandler construye el handler de estadísticas.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{now: time.Now}
}

// Daily ventas agrupadas por día, fecha descendente.
func (h *StatsHandler) Daily(c *fiber.Ctx) error {
	return c.JSON(stats.Daily(GetSession(c).Sales()))
}

// Total resumen global: ingreso, conteo, promedio, mejor día y split por
// método de pago.
func (h *StatsHandler) Total(c *fiber.Ctx) error {
	return c.JSON(stats.Total(GetSession(c).Sales()))
}

// Shift resumen del turno en curso, o 204 si no hay turno.
func (h *StatsHandler) Shift(c *fiber.Ctx) error {
	sess := GetSession(c)
	st := stats.ForShift(sess.Sales(), sess.Shift(), h.now(), sess.User())
	if st == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(st)
}
