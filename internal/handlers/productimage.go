package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

// ProductImageHandler serves and stores product image payloads.
type ProductImageHandler struct {
	db *gorm.DB
}

// NewProductImageHandler constructs ProductImageHandler.
func NewProductImageHandler(db *gorm.DB) *ProductImageHandler {
	return &ProductImageHandler{db: db}
}

// Get streams the raw image bytes with the stored MIME type.
func (h *ProductImageHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var image models.ProductImage
	if err := h.db.First(&image, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "image not found")
		}
		return err
	}

	contentType := image.MimeType
	if contentType == "" {
		contentType = "image/png"
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(image.Data)
}

// Upload stores a multipart "file" upload against an existing product.
func (h *ProductImageHandler) Upload(c *fiber.Ctx) error {
	productID, err := parseParamID(c, "productId")
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}
	if len(data) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
	}

	image := models.ProductImage{
		ProductID: product.ID,
		MimeType:  fileHeader.Header.Get(fiber.HeaderContentType),
		Data:      data,
	}

	if err := h.db.Create(&image).Error; err != nil {
		return err
	}
	addLog(h.db, "Information", fmt.Sprintf("image %s uploaded for product %s", image.ID, product.ID))

	return c.Status(fiber.StatusCreated).JSON(dto.ProductImage{
		ID:       image.ID,
		MimeType: image.MimeType,
		URL:      fmt.Sprintf("/api/productimages/%s", image.ID),
	})
}

// Delete removes a stored image.
func (h *ProductImageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var image models.ProductImage
	if err := h.db.First(&image, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "image not found")
		}
		return err
	}

	if err := h.db.Delete(&image).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
