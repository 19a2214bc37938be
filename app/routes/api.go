// Package routes wires the storefront's HTTP surface.
package routes

import (
	"github.com/shashiranjanraj/stride/app/controllers"
	appgraphql "github.com/shashiranjanraj/stride/app/graphql"
	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/repositories"
	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/logger"
	"github.com/shashiranjanraj/stride/pkg/middleware"
	"github.com/shashiranjanraj/stride/pkg/router"
	"github.com/shashiranjanraj/stride/pkg/ws"
)

// RegisterAPI mounts every /api route. feed may be nil to disable the
// admin live order feed.
func RegisterAPI(r *router.Router, feed *ws.Hub) {
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()

	catalogService := services.NewCatalogService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, feed)
	userService := services.NewUserService(userRepo)

	productController := controllers.NewProductController(catalogService)
	orderController := controllers.NewOrderController(orderService, feed)
	userController := controllers.NewUserController(userService)

	api := r.Group("/api")

	// Public catalog reads.
	api.Get("/products", "products.index", productController.Index)
	api.Get("/product/{id}", "products.show", productController.Show)

	// Read-only GraphQL catalog surface.
	if schema, err := appgraphql.NewSchema(catalogService); err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", appgraphql.Handler(schema))
	}

	// Admin product management.
	admin := api.Group("/admin", middleware.Authenticate, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/product/new", "products.create", productController.Create)
	admin.Put("/product/{id}", "products.update", productController.Update)
	admin.Delete("/product/{id}", "products.delete", productController.Delete)
	admin.Put("/product/{id}/stock", "products.stock", productController.UpdateStock)
	admin.Put("/product/{id}/toggle-sale", "products.toggleSale", productController.ToggleSale)
	admin.Post("/product/{id}/images", "products.images.add", productController.UploadImage)
	admin.Delete("/product/{id}/images", "products.images.remove", productController.DeleteImage)

	// Orders. Everything requires a valid token; admin routes add the
	// role gate.
	orders := api.Group("/orders", middleware.Authenticate)
	orders.Post("/new", "orders.place", orderController.Place)
	orders.Get("/me", "orders.mine", orderController.MyOrders)

	ordersAdmin := orders.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	ordersAdmin.Get("/all", "orders.all", orderController.AllOrders)
	ordersAdmin.Get("/live", "orders.live", orderController.LiveFeed)
	ordersAdmin.Put("/{id}", "orders.updateStatus", orderController.UpdateStatus)
	ordersAdmin.Delete("/{id}", "orders.delete", orderController.Delete)

	orders.Get("/{id}", "orders.show", orderController.Show)

	// Users and auth.
	api.Post("/users", "users.register", userController.Register)
	api.Post("/users/login", "users.login", userController.Login)

	profile := api.Group("/users", middleware.Authenticate)
	profile.Get("/profile", "users.profile", userController.Profile)
	profile.Put("/profile", "users.profile.update", userController.UpdateProfile)
}
