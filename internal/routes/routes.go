package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/auth"
	"github.com/example/ecommerce/internal/config"
	"github.com/example/ecommerce/internal/handlers"
	"github.com/example/ecommerce/internal/middleware"
	"github.com/example/ecommerce/internal/models"
)

// Register wires up all HTTP routes of the API service.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	tokens := auth.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenExpires,
	}
	codec := auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionIdle)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	imageHandler := handlers.NewProductImageHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	userHandler := handlers.NewUserHandler(db)
	logHandler := handlers.NewLogHandler(db)

	requireAuth := middleware.RequireAuth(tokens, codec, cfg.SessionCookie)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/changepassword", authHandler.ChangePassword)

	categories := api.Group("/category")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", catalogHandler.DeleteCategory)

	countries := api.Group("/countries")
	countries.Get("/", catalogHandler.ListCountries)
	countries.Post("/", catalogHandler.CreateCountry)
	countries.Get("/:id", catalogHandler.GetCountry)
	countries.Put("/:id", catalogHandler.UpdateCountry)
	countries.Delete("/:id", catalogHandler.DeleteCountry)

	products := api.Group("/product")
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	images := api.Group("/productimages")
	images.Get("/:id", imageHandler.Get)
	images.Post("/upload/:productId", imageHandler.Upload)
	images.Delete("/:id", imageHandler.Delete)

	orders := api.Group("/order", requireAuth)
	orders.Post("/create", orderHandler.Create)
	orders.Get("/user/:userId",
		middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
		orderHandler.UserOrders)
	orders.Get("/admin",
		middleware.RequireRoles(models.RoleAdmin),
		orderHandler.AllOrders)

	users := api.Group("/users")
	users.Get("/with-orders", requireAuth,
		middleware.RequireRoles(models.RoleAdmin),
		userHandler.WithOrders)
	users.Get("/byemail/:email", userHandler.GetByEmail)
	users.Put("/updateprofile/:email", userHandler.UpdateProfile)
	users.Get("/:id", userHandler.GetByID)

	logs := api.Group("/logs", requireAuth, middleware.RequireRoles(models.RoleAdmin))
	logs.Get("/get/:n", logHandler.Last)
	logs.Get("/count", logHandler.Count)
}
