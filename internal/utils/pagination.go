package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// TotalCountHeader reports the unpaged result size on list responses.
const TotalCountHeader = "X-Total-Count"

// Pagination holds pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
	Offset   int
}

// ParsePagination reads page and pageSize query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	pageSize := parseInt(c.Query("pageSize", "10"), 10)
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// SetTotalCount writes the X-Total-Count response header.
func SetTotalCount(c *fiber.Ctx, total int64) {
	c.Set(TotalCountHeader, strconv.FormatInt(total, 10))
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
