package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/sale"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// SaleHandler maneja el tablero de visitas y el cobro de ventas.
type SaleHandler struct {
	coord *sale.Coordinator
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(coord *sale.Coordinator) *SaleHandler {
	return &SaleHandler{coord: coord}
}

// CreateVisit crea un marcador de visita con etiqueta secuencial.
func (h *SaleHandler) CreateVisit(c *fiber.Ctx) error {
	visit, err := h.coord.CreateVisit(c.Context(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVisitResponse(visit))
}

// ListVisits devuelve el tablero de visitas en memoria de la sesión.
func (h *SaleHandler) ListVisits(c *fiber.Ctx) error {
	visits := GetSession(c).Visits()
	out := make([]dto.VisitResponse, 0, len(visits))
	for i := range visits {
		out = append(out, dto.ToVisitResponse(&visits[i]))
	}
	return c.JSON(out)
}

// DismissVisit quita una visita del tablero en memoria; la fila persistida
// no se toca.
func (h *SaleHandler) DismissVisit(c *fiber.Ctx) error {
	GetSession(c).RemoveVisit(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteSale concreta una venta sobre una visita abierta.
func (h *SaleHandler) CompleteSale(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Brand:       it.Brand,
			Model:       it.Model,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
		})
	}

	result, err := h.coord.CompleteSale(c.Context(), GetSession(c), sale.CompleteSaleInput{
		VisitID:       in.VisitID,
		Items:         items,
		TotalAmount:   in.TotalAmount,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CompleteSaleResponse{
		SaleID:        result.SaleID,
		ReceiptNumber: result.ReceiptNumber,
		PaymentMethod: result.PaymentMethod,
	})
}

// ListSales devuelve las ventas en memoria de la sesión.
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	sales := GetSession(c).Sales()
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, dto.ToSaleResponse(&sales[i]))
	}
	return c.JSON(out)
}
