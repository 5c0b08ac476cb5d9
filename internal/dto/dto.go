// Package dto holds the JSON shapes exchanged between the API service and
// its clients, plus the explicit entity-to-DTO conversion functions.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=5"`
}

// AuthenticatedUser is the public-safe login response: the serialized bearer
// token plus the claims it carries.
type AuthenticatedUser struct {
	ID       uuid.UUID `json:"id"`
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
}

type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Phone    string    `json:"phone"`
	Role     string    `json:"role"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
}

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required"`
}

type Country struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required"`
}

type Product struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name" validate:"required"`
	Description  string      `json:"description"`
	Price        float64     `json:"price" validate:"gte=0"`
	CategoryID   uuid.UUID   `json:"category_id" validate:"required"`
	CategoryName string      `json:"category_name"`
	CountryIDs   []uuid.UUID `json:"country_ids"`
	CountryNames []string    `json:"country_names"`
	ImageIDs     []uuid.UUID `json:"image_ids"`
}

type ProductImage struct {
	ID       uuid.UUID `json:"id"`
	MimeType string    `json:"mime_type"`
	URL      string    `json:"url"`
}

type CreateOrderRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"required"`
	Notes         string    `json:"notes"`
}

type Order struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	OrderedAt     time.Time `json:"ordered_at"`
	PaymentMethod string    `json:"payment_method"`
	Notes         string    `json:"notes"`
}

type UserWithOrders struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Surname  string  `json:"surname"`
	Role     string  `json:"role"`
	Orders   []Order `json:"orders"`
}

type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewUser(u *models.User) User {
	return User{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
		Surname:  u.Surname,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}

func NewCategory(c *models.Category) Category {
	return Category{ID: c.ID, Name: c.Name}
}

func NewCountry(c *models.Country) Country {
	return Country{ID: c.ID, Name: c.Name}
}

// NewProduct maps a product with preloaded category, countries and image
// metadata. Image payload bytes are never part of the DTO.
func NewProduct(p *models.Product) Product {
	out := Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
		CountryIDs:   make([]uuid.UUID, 0, len(p.Countries)),
		CountryNames: make([]string, 0, len(p.Countries)),
		ImageIDs:     make([]uuid.UUID, 0, len(p.Images)),
	}

	for _, country := range p.Countries {
		out.CountryIDs = append(out.CountryIDs, country.ID)
		out.CountryNames = append(out.CountryNames, country.Name)
	}

	for _, image := range p.Images {
		out.ImageIDs = append(out.ImageIDs, image.ID)
	}

	return out
}

func NewProducts(products []models.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, NewProduct(&products[i]))
	}
	return out
}

// NewOrder maps an order with preloaded product and user.
func NewOrder(o *models.Order) Order {
	userName := o.User.Name
	if o.User.Surname != "" {
		userName = userName + " " + o.User.Surname
	}

	return Order{
		ID:            o.ID,
		ProductID:     o.ProductID,
		ProductName:   o.Product.Name,
		UserID:        o.UserID,
		UserName:      userName,
		OrderedAt:     o.OrderedAt,
		PaymentMethod: o.PaymentMethod,
		Notes:         o.Notes,
	}
}

func NewOrders(orders []models.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrder(&orders[i]))
	}
	return out
}

func NewUserWithOrders(u *models.User) UserWithOrders {
	return UserWithOrders{
		Username: u.Username,
		Name:     u.Name,
		Surname:  u.Surname,
		Role:     u.Role,
		Orders:   NewOrders(u.Orders),
	}
}

func NewLogEntry(l *models.LogEntry) LogEntry {
	return LogEntry{ID: l.ID, Level: l.Level, Message: l.Message, Timestamp: l.Timestamp}
}
