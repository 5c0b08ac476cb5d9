package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

// CatalogHandler manages categories and countries.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns all categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("name").Find(&categories).Error; err != nil {
		return err
	}

	out := make([]dto.Category, 0, len(categories))
	for i := range categories {
		out = append(out, dto.NewCategory(&categories[i]))
	}
	return c.JSON(out)
}

// GetCategory returns a single category by ID.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(dto.NewCategory(&category))
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var payload dto.Category
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	category := models.Category{Name: payload.Name}
	if err := h.db.Create(&category).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCategory(&category))
}

// UpdateCategory renames an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var payload dto.Category
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	category.Name = payload.Name
	if err := h.db.Save(&category).Error; err != nil {
		return err
	}

	return c.JSON(dto.NewCategory(&category))
}

// DeleteCategory removes a category. Categories still referenced by
// products are a conflict and stay untouched.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	return h.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "category not found")
			}
			return err
		}

		var referencing int64
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).Count(&referencing).Error; err != nil {
			return err
		}
		if referencing > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"cannot delete this category due to related products")
		}

		if err := tx.Delete(&category).Error; err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	})
}

// ListCountries returns all countries.
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	var countries []models.Country
	if err := h.db.Order("name").Find(&countries).Error; err != nil {
		return err
	}

	out := make([]dto.Country, 0, len(countries))
	for i := range countries {
		out = append(out, dto.NewCountry(&countries[i]))
	}
	return c.JSON(out)
}

// GetCountry returns a single country by ID.
func (h *CatalogHandler) GetCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var country models.Country
	if err := h.db.First(&country, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "country not found")
		}
		return err
	}

	return c.JSON(dto.NewCountry(&country))
}

// CreateCountry persists a new country.
func (h *CatalogHandler) CreateCountry(c *fiber.Ctx) error {
	var payload dto.Country
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	country := models.Country{Name: payload.Name}
	if err := h.db.Create(&country).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCountry(&country))
}

// UpdateCountry renames an existing country.
func (h *CatalogHandler) UpdateCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var payload dto.Country
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	var country models.Country
	if err := h.db.First(&country, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "country not found")
		}
		return err
	}

	country.Name = payload.Name
	if err := h.db.Save(&country).Error; err != nil {
		return err
	}

	return c.JSON(dto.NewCountry(&country))
}

// DeleteCountry removes a country unless products still reference it
// through the join table.
func (h *CatalogHandler) DeleteCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	return h.db.Transaction(func(tx *gorm.DB) error {
		var country models.Country
		if err := tx.First(&country, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "country not found")
			}
			return err
		}

		var referencing int64
		if err := tx.Table("product_countries").
			Where("country_id = ?", id).Count(&referencing).Error; err != nil {
			return err
		}
		if referencing > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"cannot delete this country due to related products")
		}

		if err := tx.Delete(&country).Error; err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	})
}
