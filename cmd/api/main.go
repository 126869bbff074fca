package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventario-produccion/internal/application/distribution"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/application/procurement"
	"github.com/jhoicas/inventario-produccion/internal/application/production"
	"github.com/jhoicas/inventario-produccion/internal/application/stock"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-produccion/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-produccion/internal/interfaces/http"
	"github.com/jhoicas/inventario-produccion/pkg/config"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs --outputTypes json

// @title                       Inventario Producción API
// @version                     1.0
// @description                 Conciliación de inventario para producción de panadería y distribución.
// @BasePath                    /
// @schemes                     http
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>"
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var txRunner inventory.TxRunner
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem := memory.New(
			memory.WithLockTimeout(cfg.Reconcile.LockTimeout),
			memory.WithRetries(cfg.Reconcile.MaxRetries, cfg.Reconcile.RetryBackoff),
			memory.WithLogger(log),
		)
		if _, err := stock.Seed(ctx, mem, stock.DefaultProducts, stock.DefaultMaterials); err != nil {
			log.Fatal().Err(err).Msg("seed en memoria")
		}
		txRunner = mem
		log.Warn().Msg("Stock Store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		txRunner = postgres.NewTxRunner(pool, cfg.Reconcile, log)
	}

	engine := inventory.NewEngine(nil)
	productionUC := production.NewUseCase(txRunner, engine, log)
	distributionUC := distribution.NewUseCase(txRunner, engine, infrapdf.NewManifestGenerator(cfg.App.Name), log)
	procurementUC := procurement.NewUseCase(txRunner, log)
	stockUC := stock.NewUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Producción API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductionUC:   productionUC,
		DistributionUC: distributionUC,
		ProcurementUC:  procurementUC,
		StockUC:        stockUC,
		JWTSecret:      cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
