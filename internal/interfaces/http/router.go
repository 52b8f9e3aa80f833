package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comandapos/comanda-api/internal/application/auth"
	"github.com/comandapos/comanda-api/internal/application/business"
	"github.com/comandapos/comanda-api/internal/application/catalog"
	"github.com/comandapos/comanda-api/internal/application/inventory"
	"github.com/comandapos/comanda-api/internal/application/orders"
	"github.com/comandapos/comanda-api/internal/application/reporting"
	"github.com/comandapos/comanda-api/internal/application/tables"
	"github.com/comandapos/comanda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.CatalogUseCase
	TableUC     *tables.TableUseCase
	OrderUC     *orders.OrderUseCase
	InventoryUC *inventory.InventoryUseCase
	BusinessUC  *business.BusinessUseCase
	ReportingUC *reporting.ReportingUseCase
	TicketPDF   PDFGenerator
	OrderHub    *OrderHub
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

	// Feed en tiempo real (token por query, ver OrdersFeedUpgrade)
	app.Get("/ws/orders", OrdersFeedUpgrade(deps.JWTSecret), OrdersFeedHandler(deps.OrderHub))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo: lecturas para todo el personal, escrituras solo admin
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", adminOnly, catalogHandler.CreateCategory)
	categories.Put("/:id", adminOnly, catalogHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Post("/", adminOnly, catalogHandler.CreateProduct)
	products.Put("/:id", adminOnly, catalogHandler.UpdateProduct)
	products.Delete("/:id", adminOnly, catalogHandler.DeleteProduct)

	// Mesas
	tableHandler := NewTableHandler(deps.TableUC)
	tablesGroup := protected.Group("/tables")
	tablesGroup.Get("/", tableHandler.List)
	tablesGroup.Post("/", adminOnly, tableHandler.Create)
	tablesGroup.Put("/:id", adminOnly, tableHandler.Update)
	tablesGroup.Delete("/:id", adminOnly, tableHandler.Delete)

	// Comandas: meseros y admins
	orderHandler := NewOrderHandler(deps.OrderUC, deps.TicketPDF)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/ticket.pdf", orderHandler.TicketPDF)
	ordersGroup.Post("/:id/items", orderHandler.AppendItems)
	ordersGroup.Post("/:id/reprint", orderHandler.Reprint)
	ordersGroup.Post("/:id/printed", orderHandler.MarkPrinted)
	// Cancelar es destructivo para las métricas del día: solo admin
	ordersGroup.Post("/:id/cancel", adminOnly, orderHandler.Cancel)

	// Inventario: solo admin
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory", adminOnly)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/low-stock", inventoryHandler.ListLowStock)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", inventoryHandler.DeleteItem)
	invGroup.Get("/items/:id/movements", inventoryHandler.ListMovements)

	// Negocio: perfil visible para todos, edición solo admin
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businessGroup := protected.Group("/business")
	businessGroup.Get("/", businessHandler.Get)
	businessGroup.Put("/", adminOnly, businessHandler.Update)
	businessGroup.Post("/logo", adminOnly, businessHandler.UploadLogo)

	// Tablero del día
	dashboardHandler := NewDashboardHandler(deps.ReportingUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
}
