package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/example/ecommerce/internal/config"
	"github.com/example/ecommerce/internal/webapp"
)

func main() {
	cfg := config.Load()

	engine := html.New(webapp.TemplatesDir(), ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Ecommerce Web",
		Views:        engine,
		ErrorHandler: webapp.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(logger.New())

	webapp.Register(app, cfg)

	log.Printf("Starting web server on :%s", cfg.WebPort)
	if err := app.Listen(":" + cfg.WebPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
