package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-erp/internal/application/auth"
	appddt "github.com/tu-usuario/almacen-erp/internal/application/ddt"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/application/usecase"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	AdjustUC    *inventory.AdjustInventoryUseCase
	ReserveUC   *inventory.ReserveInventoryUseCase
	ReleaseUC   *inventory.ReleaseReservationUseCase
	ReverseUC   *stockmovement.ReverseStockMovementUseCase
	Duplicates  *stockmovement.DuplicateMovementReport
	ConfirmUC   *appddt.ConfirmDdtUseCase
	CancelUC    *appddt.CancelDdtUseCase
	InvRepo     repository.InventoryRepository
	MovRepo     repository.StockMovementRepository
	DdtRepo     repository.DdtRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	operators := RequireRole(entity.RoleAdmin, entity.RoleMagazziniere)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleMagazziniere, entity.RoleCapocantiere)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Warehouses: lectura para todos, escritura solo admin
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", anyRole, warehouseHandler.List)
	warehouses.Get("/:id", anyRole, warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Inventario: ajustes solo operadores de bodega; reservas también capocantiere
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.ReserveUC, deps.ReleaseUC, deps.InvRepo)
	invGroup.Post("/adjust", operators, inventoryHandler.Adjust)
	invGroup.Post("/reserve", anyRole, inventoryHandler.Reserve)
	invGroup.Post("/release", anyRole, inventoryHandler.Release)
	invGroup.Get("/:warehouse_id/:product_id", anyRole, inventoryHandler.GetStock)

	// Movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ReverseUC, deps.Duplicates, deps.MovRepo)
	movements.Get("/duplicates", adminOnly, movementHandler.DuplicateReport)
	movements.Get("/warehouse/:warehouse_id", anyRole, movementHandler.ListByWarehouse)
	movements.Get("/:id", anyRole, movementHandler.GetByID)
	movements.Post("/:id/reverse", operators, movementHandler.Reverse)

	// DDT
	ddtGroup := protected.Group("/ddt")
	ddtHandler := NewDdtHandler(deps.ConfirmUC, deps.CancelUC, deps.DdtRepo)
	ddtGroup.Get("/:id", anyRole, ddtHandler.GetByID)
	ddtGroup.Post("/:id/confirm", operators, ddtHandler.Confirm)
	ddtGroup.Post("/:id/cancel", operators, ddtHandler.Cancel)
}
