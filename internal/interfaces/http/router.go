package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-produccion/internal/application/distribution"
	"github.com/jhoicas/inventario-produccion/internal/application/procurement"
	"github.com/jhoicas/inventario-produccion/internal/application/production"
	"github.com/jhoicas/inventario-produccion/internal/application/stock"
	"github.com/jhoicas/inventario-produccion/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductionUC   *production.UseCase
	DistributionUC *distribution.UseCase
	ProcurementUC  *procurement.UseCase
	StockUC        *stock.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Toda la API exige Bearer Token;
// eliminar y registrar compras queda reservado a admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleEmployee)
	adminOnly := RequireRole(jwt.RoleAdmin)

	batches := api.Group("/production-batches", anyRole)
	productionHandler := NewProductionHandler(deps.ProductionUC)
	batches.Post("/", productionHandler.Create)
	batches.Get("/:id", productionHandler.GetByID)
	batches.Put("/:id", productionHandler.Update)
	batches.Delete("/:id", adminOnly, productionHandler.Delete)

	orders := api.Group("/distribution-orders", anyRole)
	distributionHandler := NewDistributionHandler(deps.DistributionUC)
	orders.Post("/", distributionHandler.Create)
	orders.Get("/:id", distributionHandler.GetByID)
	orders.Get("/:id/manifest", distributionHandler.Manifest)
	orders.Put("/:id", distributionHandler.Update)
	orders.Delete("/:id", adminOnly, distributionHandler.Delete)

	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	api.Post("/procurements", adminOnly, procurementHandler.Create)

	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/inventory/stock", anyRole, stockHandler.Summary)
	api.Get("/activity-logs", anyRole, stockHandler.Activity)
}
