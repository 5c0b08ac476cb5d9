package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/middleware"
	"github.com/example/ecommerce/internal/models"
)

// OrderHandler manages order endpoints. All routes require authentication.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// Create places an order for the authenticated user. The referenced product
// must exist and not be soft-deleted; OrderedAt is assigned server-side.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid credentials")
	}

	var req dto.CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var product models.Product
	err := h.db.Where("id = ? AND is_deleted = ?", req.ProductID, false).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	order := models.Order{
		ProductID:     product.ID,
		UserID:        identity.UserID,
		OrderedAt:     time.Now().UTC(),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	order.Product = product
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrder(&order))
}

// UserOrders lists a user's orders, newest first. Non-admin callers may only
// read their own orders.
func (h *OrderHandler) UserOrders(c *fiber.Ctx) error {
	userID, err := parseParamID(c, "userId")
	if err != nil {
		return err
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid credentials")
	}

	if identity.Role != models.RoleAdmin && identity.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "cannot read another user's orders")
	}

	var orders []models.Order
	if err := h.db.
		Preload("Product").
		Preload("User").
		Where("user_id = ?", userID).
		Order("ordered_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(dto.NewOrders(orders))
}

// AllOrders lists every order with product and user names. Admin only.
func (h *OrderHandler) AllOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := h.db.
		Preload("Product").
		Preload("User").
		Order("ordered_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(dto.NewOrders(orders))
}
