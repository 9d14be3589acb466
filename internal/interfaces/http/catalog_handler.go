package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
)

// CatalogHandler sirve tiendas y productos.
type CatalogHandler struct {
	storeUC   *usecase.StoreUseCase
	productUC *usecase.ProductUseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(storeUC *usecase.StoreUseCase, productUC *usecase.ProductUseCase) *CatalogHandler {
	return &CatalogHandler{storeUC: storeUC, productUC: productUC}
}

// ListStores devuelve las tiendas disponibles. Ruta pública: la pantalla de
// login necesita la lista antes de autenticar.
func (h *CatalogHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.storeUC.LoadStores(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, dto.ToStoreResponse(&stores[i]))
	}
	return c.JSON(out)
}

// ListProducts devuelve el catálogo visible para la sesión. Además refresca
// la copia en memoria que usa la validación de stock.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	sess := GetSession(c)
	products, err := h.productUC.ListProducts(c.Context(), sess.User(), sess.StoreID())
	if err != nil {
		return respondError(c, err)
	}
	sess.SetProducts(products)
	return c.JSON(products)
}

// GetProduct devuelve un producto por id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.productUC.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}
