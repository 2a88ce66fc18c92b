package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/auth"
	"github.com/jhoicas/gestioncom-api/internal/application/category"
	"github.com/jhoicas/gestioncom-api/internal/application/movement"
	"github.com/jhoicas/gestioncom-api/internal/application/product"
	"github.com/jhoicas/gestioncom-api/internal/application/user"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *product.UseCase
	MovementUC *movement.UseCase
	CategoryUC *category.UseCase
	UserUC     *user.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/profile", authHandler.Profile)

	// Productos (protegido; borrado solo admin)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/top-precio", productHandler.TopByPrice)
	products.Get("/top-valor", productHandler.TopByTotalValue)
	products.Get("/export/csv", productHandler.ExportCSV)
	products.Get("/export/pdf", productHandler.ExportPDF)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Patch)
	products.Delete("/:id", adminOnly, productHandler.Remove)

	// Movimientos (protegido, solo lectura)
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/export/csv", movementHandler.ExportCSV)

	// Categorías (protegido; borrado solo admin)
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Patch("/:id", categoryHandler.Patch)
	categories.Delete("/:id", adminOnly, categoryHandler.Remove)

	// Usuarios (listado público reducido + avatar; CRUD completo solo admin)
	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.ListPublic)
	users.Post("/avatar", userHandler.UploadAvatar)
	users.Get("/:id/avatar", userHandler.GetAvatar)

	admin := users.Group("/admin", adminOnly)
	admin.Post("/", userHandler.Create)
	admin.Get("/", userHandler.ListAdmin)
	admin.Patch("/:id", userHandler.Patch)
	admin.Delete("/:id", userHandler.Remove)
}
