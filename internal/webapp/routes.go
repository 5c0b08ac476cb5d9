package webapp

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ecommerce/internal/apiclient"
	"github.com/example/ecommerce/internal/config"
)

// Register wires up all routes of the web front end.
func Register(app *fiber.App, cfg *config.Config) {
	api := apiclient.New(cfg.APIBaseURL)
	sessions := NewSessions(cfg)

	account := NewAccountHandler(api, sessions)
	products := NewProductsHandler(api)
	catalog := NewCatalogHandler(api)
	orders := NewOrdersHandler(api)

	app.Use(sessions.Load())

	app.Get("/account/login", account.LoginForm)
	app.Post("/account/login", account.Login)
	app.Get("/account/register", account.RegisterForm)
	app.Post("/account/register", account.Register)
	app.Post("/account/logout", account.Logout)
	app.Get("/account/denied", account.Denied)
	app.Get("/account/profile", RequireLogin(), account.Profile)
	app.Post("/account/profile", RequireLogin(), account.UpdateProfile)
	app.Post("/account/password", RequireLogin(), account.ChangePassword)

	app.Get("/", RequireLogin(), products.Index)
	app.Get("/images/:id", products.Image)

	app.Post("/orders", RequireLogin(), orders.Create)
	app.Get("/orders/mine", RequireLogin(), orders.Mine)
	app.Get("/orders/customers", RequireLogin(), RequireAdmin(), orders.Customers)

	admin := app.Group("/admin", RequireLogin(), RequireAdmin())
	admin.Get("/products", products.AdminIndex)
	admin.Get("/products/new", products.NewForm)
	admin.Post("/products", products.Create)
	admin.Get("/products/:id/edit", products.EditForm)
	admin.Post("/products/:id", products.Update)
	admin.Post("/products/:id/delete", products.Delete)
	admin.Get("/categories", catalog.Categories)
	admin.Post("/categories", catalog.CreateCategory)
	admin.Post("/categories/:id/delete", catalog.DeleteCategory)
	admin.Get("/countries", catalog.Countries)
	admin.Post("/countries", catalog.CreateCountry)
	admin.Post("/countries/:id/delete", catalog.DeleteCountry)
}

// render wraps c.Render with the shared layout and injects the visitor's
// identity for the navigation bar.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if identity, ok := CurrentIdentity(c); ok {
		data["Identity"] = identity
	}
	return c.Render(name, data, "layouts/main")
}

// ErrorHandler renders the shared error page. API failures keep their
// status so a 404 from the API stays a 404 in the browser.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong."

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			code = apiErr.Status
			message = apiErr.Message
		}

		c.Status(code)
		if renderErr := render(c, "error", fiber.Map{"Code": code, "Message": message}); renderErr != nil {
			return c.SendString(message)
		}
		return nil
	}
}

// TemplatesDir locates the template directory relative to the working
// directory, so the binary and package tests both resolve it.
func TemplatesDir() string {
	candidates := []string{
		"web/templates",
		filepath.Join("..", "..", "web", "templates"),
		filepath.Join("..", "web", "templates"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return candidates[0]
}
