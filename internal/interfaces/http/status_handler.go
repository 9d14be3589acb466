package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
)

// StatusHandler expone y controla el estado de conectividad del proceso.
// El POST existe porque el cliente es quien detecta la pérdida de red y se
// la comunica al núcleo; también sirve para simular cortes en pruebas.
type StatusHandler struct {
	monitor *connectivity.Monitor
}

// NewStatusHandler construye el handler de estado.
func NewStatusHandler(monitor *connectivity.Monitor) *StatusHandler {
	return &StatusHandler{monitor: monitor}
}

// Get devuelve el estado de conectividad actual.
func (h *StatusHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{Online: h.monitor.IsOnline()})
}

// Set marca el proceso online/offline. Al pasar a online se disparan los
// reintentos pendientes (cierres diferidos, recarga de tiendas).
func (h *StatusHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.monitor.Set(in.Online)
	return c.JSON(dto.StatusResponse{Online: h.monitor.IsOnline()})
}
