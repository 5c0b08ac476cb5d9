package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
	"github.com/example/ecommerce/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// withListPreloads loads category, countries and image metadata. Image
// payload bytes are deliberately not selected.
func (h *ProductHandler) withListPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Category").
		Preload("Countries").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "product_id", "mime_type")
		})
}

// List returns all non-deleted products without image payloads.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.withListPreloads(h.db).
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(dto.NewProducts(products))
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.withListPreloads(h.db).First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			addLog(h.db, "Warning", fmt.Sprintf("product %s not found", id))
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(dto.NewProduct(&product))
}

// Search filters by name substring and category with pagination. The unpaged
// total is reported via the X-Total-Count header.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Product{}).Where("is_deleted = ?", false)

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if rawCategory := c.Query("categoryId"); rawCategory != "" {
		categoryID, err := uuid.Parse(rawCategory)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := h.withListPreloads(query).
		Limit(pg.PageSize).Offset(pg.Offset).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	utils.SetTotalCount(c, total)
	return c.JSON(dto.NewProducts(products))
}

// Create persists a new product after validating its category and countries.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var payload dto.Product
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", payload.CategoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
		}
		return err
	}

	countries, err := h.findCountries(payload.CountryIDs)
	if err != nil {
		return err
	}

	product := models.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		CategoryID:  category.ID,
		Countries:   countries,
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}
	addLog(h.db, "Information", fmt.Sprintf("product %s created", product.ID))

	product.Category = category
	return c.Status(fiber.StatusCreated).JSON(dto.NewProduct(&product))
}

// Update rewrites product fields and replaces the country set, all inside
// one transaction.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var payload dto.Product
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	return h.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Preload("Countries").First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				addLog(h.db, "Warning", fmt.Sprintf("product %s not found during update", id))
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return err
		}

		if product.CategoryID != payload.CategoryID {
			var category models.Category
			if err := tx.First(&category, "id = ?", payload.CategoryID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
				}
				return err
			}
			product.CategoryID = category.ID
		}

		countries, err := h.findCountriesTx(tx, payload.CountryIDs)
		if err != nil {
			return err
		}

		product.Name = payload.Name
		product.Description = payload.Description
		product.Price = payload.Price

		if err := tx.Model(&product).Association("Countries").Replace(countries); err != nil {
			return err
		}

		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		addLog(h.db, "Information", fmt.Sprintf("product %s updated", id))
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// Delete removes a product. When orders reference it the row is soft-deleted
// so order history stays intact; otherwise join rows and images are removed
// before the row itself, in one transaction.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	return h.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				addLog(h.db, "Warning", fmt.Sprintf("product %s not found for deletion", id))
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return err
		}

		var orderCount int64
		if err := tx.Model(&models.Order{}).
			Where("product_id = ?", id).Count(&orderCount).Error; err != nil {
			return err
		}

		if orderCount > 0 {
			if err := tx.Model(&product).Update("is_deleted", true).Error; err != nil {
				return err
			}
			addLog(h.db, "Information", fmt.Sprintf("product %s soft-deleted", id))
			return c.SendStatus(fiber.StatusNoContent)
		}

		if err := tx.Exec("DELETE FROM product_countries WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&product).Error; err != nil {
			return err
		}

		addLog(h.db, "Information", fmt.Sprintf("product %s deleted", id))
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (h *ProductHandler) findCountries(ids []uuid.UUID) ([]models.Country, error) {
	return h.findCountriesTx(h.db, ids)
}

func (h *ProductHandler) findCountriesTx(tx *gorm.DB, ids []uuid.UUID) ([]models.Country, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var countries []models.Country
	if err := tx.Where("id IN ?", ids).Find(&countries).Error; err != nil {
		return nil, err
	}

	if len(countries) != len(ids) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid country id")
	}

	return countries, nil
}
