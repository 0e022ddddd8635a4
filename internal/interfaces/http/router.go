package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *catalog.ProductUseCase
	PurchaseUC *catalog.PurchaseUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, salvo logout)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-email/:userId", authHandler.VerifyEmail)
	authGroup.Post("/resend-verification/:userId", authHandler.ResendVerificationOTP)
	authGroup.Post("/logout", AuthMiddleware(deps.AuthUC), authHandler.Logout)

	// Products (requieren Bearer Token; crear/modificar/eliminar solo admin)
	products := api.Group("/products", AuthMiddleware(deps.AuthUC))
	productHandler := NewProductHandler(deps.ProductUC, deps.PurchaseUC)
	products.Post("/", RequireRole(deps.AuthUC, entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/buy", productHandler.Buy)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(deps.AuthUC, entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(deps.AuthUC, entity.RoleAdmin), productHandler.Delete)
}
