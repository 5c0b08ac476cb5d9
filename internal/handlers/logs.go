package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

// LogHandler exposes the append-only log store for diagnostics.
type LogHandler struct {
	db *gorm.DB
}

// NewLogHandler constructs LogHandler.
func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{db: db}
}

// Last returns the n most recent log entries.
func (h *LogHandler) Last(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("n"))
	if err != nil || n <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "n must be greater than 0")
	}

	var entries []models.LogEntry
	if err := h.db.Order("timestamp desc").Limit(n).Find(&entries).Error; err != nil {
		return err
	}

	out := make([]dto.LogEntry, 0, len(entries))
	for i := range entries {
		out = append(out, dto.NewLogEntry(&entries[i]))
	}

	return c.JSON(out)
}

// Count returns the total number of stored log entries.
func (h *LogHandler) Count(c *fiber.Ctx) error {
	var count int64
	if err := h.db.Model(&models.LogEntry{}).Count(&count).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"count": count})
}
