package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/tienda-pos/internal/application/auth"
	"github.com/tu-usuario/tienda-pos/internal/application/connectivity"
	"github.com/tu-usuario/tienda-pos/internal/application/sale"
	"github.com/tu-usuario/tienda-pos/internal/application/session"
	"github.com/tu-usuario/tienda-pos/internal/application/shift"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/diagnostics"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tienda-pos/internal/interfaces/http"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	snapshots := cache.New(cfg.Cache, log)
	defer snapshots.Close()
	if err := snapshots.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("caché local no disponible, siguiendo sin snapshots")
	}

	diag := diagnostics.New(cfg.Diagnostics, log)
	monitor := connectivity.NewMonitor(log)
	manager := session.NewManager()
	loader := session.NewLoader(productRepo, saleRepo, visitRepo, monitor, log)

	shiftUC := shift.NewUseCase(shiftRepo, visitRepo, saleRepo, monitor, snapshots, diag, log)
	saleCoord := sale.NewCoordinator(txRunner, visitRepo, saleRepo, monitor, diag, log)
	authUC := auth.NewUseCase(userRepo, storeRepo, monitor, cfg.JWT, log)
	storeUC := usecase.NewStoreUseCase(storeRepo, monitor, snapshots, log)
	productUC := usecase.NewProductUseCase(productRepo, monitor, log)

	// Reacciones a la reconexión: cierres de turno diferidos y refresco de tiendas.
	go shiftUC.WatchConnectivity(ctx, manager)
	go storeUC.WatchConnectivity(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "online": monitor.IsOnline()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ShiftUC:   shiftUC,
		SaleCoord: saleCoord,
		StoreUC:   storeUC,
		ProductUC: productUC,
		Manager:   manager,
		Loader:    loader,
		Monitor:   monitor,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	cancel()
	manager.Teardown()
	log.Info().Msg("aplicación detenida")
}
