package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/auth"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/orders"
	appsync "github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/sync"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/usecase"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RestaurantUC *usecase.RestaurantUseCase
	SectionUC    *usecase.SectionUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	UserUC       *usecase.UserUseCase
	OrderUC      *orders.UseCase
	Reconciler   *appsync.Reconciler
	JWTSecret    string
}

// Router registra las rutas de la API. Las reglas gruesas por rol van aquí
// (RequireRole); las finas por sección las decide el dominio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	privileged := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth: login público; registro solo para admin del restaurante.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Restaurants: la vinculación es pública (onboarding); el resto, protegido.
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC)
	restaurants := api.Group("/restaurants")
	restaurants.Post("/link", restaurantHandler.Link)
	restaurants.Get("/me", AuthMiddleware(deps.JWTSecret), restaurantHandler.Get)
	restaurants.Put("/me", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), restaurantHandler.Update)
	restaurants.Delete("/me", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), restaurantHandler.Deactivate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sections: lectura para todos, escritura para roles privilegiados.
	sections := protected.Group("/sections")
	sectionHandler := NewSectionHandler(deps.SectionUC)
	sections.Get("/", sectionHandler.List)
	sections.Get("/:id", sectionHandler.GetByID)
	sections.Post("/", privileged, sectionHandler.Create)
	sections.Put("/:id", privileged, sectionHandler.Update)
	sections.Delete("/:id", privileged, sectionHandler.Deactivate)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", privileged, supplierHandler.Create)
	suppliers.Put("/:id", privileged, supplierHandler.Update)
	suppliers.Delete("/:id", privileged, supplierHandler.Deactivate)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", privileged, productHandler.Create)
	products.Put("/:id", privileged, productHandler.Update)
	products.Delete("/:id", privileged, productHandler.Deactivate)

	// Users y capacidades por sección (solo roles privilegiados)
	users := protected.Group("/users", privileged)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id/sections", userHandler.ListAssignments)
	users.Post("/:id/sections", userHandler.AssignSection)
	users.Delete("/:id/sections/:section_id", userHandler.RevokeSection)

	// Orders: cualquier usuario autenticado; el dominio decide qué puede hacer.
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/bulk", orderHandler.BulkUpdate)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Get("/:id/pdf", orderHandler.ExportPDF)

	// Sync (solo roles privilegiados)
	syncGroup := protected.Group("/sync", privileged)
	syncHandler := NewSyncHandler(deps.Reconciler)
	syncGroup.Post("/", syncHandler.ReconcileAll)
	syncGroup.Get("/status", syncHandler.Status)
	syncGroup.Post("/:type", syncHandler.Reconcile)
}
