package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/shift"
)

// ShiftHandler maneja apertura, cierre y consulta del turno.
type ShiftHandler struct {
	uc *shift.UseCase
}

// NewShiftHandler construye el handler de turnos.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Start abre un turno para la sesión.
func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	sess := GetSession(c)
	sh, err := h.uc.Start(c.Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToShiftResponse(sh, sess.PendingAutoClose()))
}

// End cierra el turno de la sesión.
func (h *ShiftHandler) End(c *fiber.Ctx) error {
	if err := h.uc.End(c.Context(), GetSession(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Current devuelve el turno activo de la sesión, o 204 si no hay.
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	sess := GetSession(c)
	sh := sess.Shift()
	if sh == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.ToShiftResponse(sh, sess.PendingAutoClose()))
}
