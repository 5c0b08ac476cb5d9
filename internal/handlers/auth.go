package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ecommerce/internal/auth"
	"github.com/example/ecommerce/internal/config"
	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/middleware"
	"github.com/example/ecommerce/internal/models"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db     *gorm.DB
	tokens auth.TokenConfig
	codec  auth.SessionCodec
	cookie string
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db: db,
		tokens: auth.TokenConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			TTL:      cfg.TokenExpires,
		},
		codec:  auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionIdle),
		cookie: cfg.SessionCookie,
	}
}

// Register creates a new user account with the default role.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var existing models.User
	err := h.db.Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "username or email already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: auth.HashPassword(req.Password),
		Role:         models.RoleUser,
		Name:         req.Name,
		Surname:      req.Surname,
		Phone:        req.Phone,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUser(&user))
}

// Login verifies credentials and issues the identity assertion. The bearer
// token goes into the JSON response; the same identity is also set as a
// signed session cookie so direct calls to this service can authenticate
// without re-presenting the token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.verifyCredentials(req.Username, req.Password)
	if err != nil {
		return err
	}

	identity, err := auth.NewIdentity(h.tokens, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	session, err := h.codec.Encode(identity)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
	}
	middleware.SetSessionCookie(c, h.cookie, session, h.codec.Idle())

	return c.JSON(dto.AuthenticatedUser{
		ID:       user.ID,
		Token:    identity.Token,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Name:     user.Name,
		Surname:  user.Surname,
	})
}

// ChangePassword verifies the old credential and stores a new digest.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.verifyCredentials(req.Username, req.OldPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = auth.HashPassword(req.NewPassword)
	if err := h.db.Save(user).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "password changed"})
}

// verifyCredentials resolves the username and recomputes the digest. Unknown
// username and digest mismatch yield the identical outcome.
func (h *AuthHandler) verifyCredentials(username, password string) (*models.User, error) {
	invalid := fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, invalid
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, invalid
	}

	return &user, nil
}
