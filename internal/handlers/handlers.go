// Package handlers implements the REST endpoints of the API service.
package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/models"
)

var validate = validator.New()

// parseID reads the :id route parameter as a UUID.
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return parseParamID(c, "id")
}

func parseParamID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// parseBody decodes and validates a JSON request payload.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return err
	}
	return nil
}

// addLog appends an entry to the log store. Failures are reported to stderr
// but never fail the request being logged.
func addLog(db *gorm.DB, level, message string) {
	entry := models.LogEntry{
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("log store append failed: %v", err)
	}
}

// ErrorHandler translates errors into HTTP statuses: fiber errors keep their
// status, validation failures map to 400, missing records to 404, and
// anything else is recorded to the log store and returned as a generic 500.
func ErrorHandler(db *gorm.DB) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make(map[string]string, len(validationErrs))
			for _, fe := range validationErrs {
				fields[fe.Field()] = fe.Tag()
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": fields,
			})
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}

		addLog(db, "Error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "an unexpected error occurred",
		})
	}
}
