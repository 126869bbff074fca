// Comando seed: crea el catálogo de productos y las materias primas base en PostgreSQL.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/stock"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-produccion/pkg/config"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	res, err := stock.Seed(ctx, postgres.NewTxRunner(pool, cfg.Reconcile, log), stock.DefaultProducts, stock.DefaultMaterials)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("products", res.Products).Int("materials", res.Materials).Msg("seed completado")
}
