package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/auth"
	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/sale"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/application/shift"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ShiftUC   *shift.UseCase
	SaleCoord *sale.Coordinator
	StoreUC   *usecase.StoreUseCase
	ProductUC *usecase.ProductUseCase
	Manager   *session.Manager
	Loader    *session.Loader
	Monitor   *connectivity.Monitor
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.ShiftUC, deps.Manager, deps.Loader)
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	saleHandler := NewSaleHandler(deps.SaleCoord)
	statsHandler := NewStatsHandler()
	catalogHandler := NewCatalogHandler(deps.StoreUC, deps.ProductUC)
	statusHandler := NewStatusHandler(deps.Monitor)

	// Público: login y la lista de tiendas que necesita la pantalla de login.
	api.Post("/auth/login", authHandler.Login)
	api.Get("/stores", catalogHandler.ListStores)
	api.Get("/status", statusHandler.Get)
	api.Post("/status", statusHandler.Set)

	// Protegido: requiere Bearer Token y sesión viva.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), SessionMiddleware(deps.Manager))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/register", authHandler.Register)
	protected.Get("/users", authHandler.ListUsers)
	protected.Delete("/users/:id", authHandler.DeleteUser)

	protected.Post("/shifts", shiftHandler.Start)
	protected.Delete("/shifts/current", shiftHandler.End)
	protected.Get("/shifts/current", shiftHandler.Current)

	protected.Post("/visits", saleHandler.CreateVisit)
	protected.Get("/visits", saleHandler.ListVisits)
	protected.Delete("/visits/:id", saleHandler.DismissVisit)

	protected.Post("/sales", saleHandler.CompleteSale)
	protected.Get("/sales", saleHandler.ListSales)

	protected.Get("/stats/daily", statsHandler.Daily)
	protected.Get("/stats/total", statsHandler.Total)
	protected.Get("/stats/shift", statsHandler.Shift)

	protected.Get("/products", catalogHandler.ListProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
}
