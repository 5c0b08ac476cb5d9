package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

// UserHandler manages user profile endpoints.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetByID returns a user by ID.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(dto.NewUser(&user))
}

// GetByEmail returns a user by email address.
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(dto.NewUser(&user))
}

// UpdateProfile rewrites the profile fields of the user behind the email
// path parameter.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	email := c.Params("email")

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Name = req.Name
	user.Surname = req.Surname
	user.Phone = req.Phone

	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// WithOrders lists all users together with their order history. Admin only.
func (h *UserHandler) WithOrders(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordered_at desc")
		}).
		Preload("Orders.Product").
		Find(&users).Error; err != nil {
		return err
	}

	out := make([]dto.UserWithOrders, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserWithOrders(&users[i]))
	}

	return c.JSON(out)
}
