package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      authService
	UserUC      userService
	WarehouseUC warehouseService
	ProductUC   productService
	StockUC     stockService
	PriceListUC priceListService
	TransferUC  transferService
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)

	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stocks", stockHandler.List)

	pricelists := protected.Group("/pricelists")
	priceListHandler := NewPriceListHandler(deps.PriceListUC)
	pricelists.Get("/", priceListHandler.List)
	pricelists.Get("/:id/warehouses/:warehouseId", priceListHandler.WarehouseView)
	pricelists.Get("/:id/warehouses/:warehouseId/products/:productId", priceListHandler.WarehouseProductView)
	pricelists.Post("/", adminOnly, priceListHandler.Create)
	pricelists.Put("/:id", adminOnly, priceListHandler.Update)
	pricelists.Delete("/:id", adminOnly, priceListHandler.Delete)
	pricelists.Post("/:id/prices", adminOnly, priceListHandler.AddPrice)

	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.ChangePassword)
	users.Delete("/:id", userHandler.Delete)
	protected.Get("/roles", adminOnly, userHandler.Roles)

	// Transferencias: cualquier usuario autenticado
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/receipt", transferHandler.Receipt)
}
