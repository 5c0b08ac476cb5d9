package webapp

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ecommerce/internal/apiclient"
	"github.com/example/ecommerce/internal/auth"
	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

// AccountHandler owns the login, registration and profile pages.
type AccountHandler struct {
	api      *apiclient.Client
	sessions Sessions
}

func NewAccountHandler(api *apiclient.Client, sessions Sessions) *AccountHandler {
	return &AccountHandler{api: api, sessions: sessions}
}

func (h *AccountHandler) LoginForm(c *fiber.Ctx) error {
	data := fiber.Map{"Username": ""}
	switch c.Query("reason") {
	case "unauthorized":
		data["Notice"] = "Please sign in to continue."
	case "registered":
		data["Notice"] = "Account created. Sign in to continue."
	case "passwordchanged":
		data["Notice"] = "Password changed. Sign in with the new one."
	}
	return render(c, "login", data)
}

// Login forwards credentials to the API and, on success, stores the issued
// identity in the session cookie. The bearer token inside the cookie is the
// one the API signed; the front end never mints its own.
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	authUser, err := h.api.Login(dto.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) {
			return render(c, "login", fiber.Map{
				"Error":    "Invalid username or password.",
				"Username": username,
			})
		}
		return err
	}

	identity := auth.Identity{
		UserID:   authUser.ID,
		Username: authUser.Username,
		Email:    authUser.Email,
		Role:     authUser.Role,
		Token:    authUser.Token,
	}
	if err := h.sessions.SignIn(c, identity); err != nil {
		return err
	}

	if identity.Role == models.RoleAdmin {
		return c.Redirect("/admin/products")
	}
	return c.Redirect("/")
}

func (h *AccountHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Form": dto.RegisterRequest{}})
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	req := dto.RegisterRequest{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		Email:    c.FormValue("email"),
		Name:     c.FormValue("name"),
		Surname:  c.FormValue("surname"),
		Phone:    c.FormValue("phone"),
	}

	if req.Password != c.FormValue("confirm_password") {
		return render(c, "register", fiber.Map{
			"Error": "Passwords do not match.",
			"Form":  req,
		})
	}

	if err := h.api.Register(req); err != nil {
		if apiErr, ok := err.(*apiclient.Error); ok && apiErr.Status < http.StatusInternalServerError {
			return render(c, "register", fiber.Map{
				"Error": apiErr.Message,
				"Form":  req,
			})
		}
		return err
	}

	return c.Redirect("/account/login?reason=registered")
}

func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	h.sessions.SignOut(c)
	return c.Redirect("/account/login")
}

func (h *AccountHandler) Denied(c *fiber.Ctx) error {
	return render(c, "denied", fiber.Map{})
}

// Profile reloads the account from the API rather than trusting the cookie;
// the session only carries claims, not the mutable profile fields.
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	identity, _ := CurrentIdentity(c)

	user, err := h.api.WithToken(identity.Token).UserByEmail(identity.Email)
	if err != nil {
		return err
	}

	data := fiber.Map{"Profile": NewProfileVM(user)}
	if c.Query("saved") != "" {
		data["Notice"] = "Profile saved."
	}
	return render(c, "profile", data)
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, _ := CurrentIdentity(c)

	req := dto.UpdateProfileRequest{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Name:     c.FormValue("name"),
		Surname:  c.FormValue("surname"),
		Phone:    c.FormValue("phone"),
	}

	if err := h.api.WithToken(identity.Token).UpdateProfile(identity.Email, req); err != nil {
		if apiErr, ok := err.(*apiclient.Error); ok && apiErr.Status < http.StatusInternalServerError {
			return render(c, "profile", fiber.Map{
				"Error": apiErr.Message,
				"Profile": ProfileVM{
					Username: req.Username,
					Email:    req.Email,
					Name:     req.Name,
					Surname:  req.Surname,
					Phone:    req.Phone,
					Role:     identity.Role,
				},
			})
		}
		return err
	}

	return c.Redirect("/account/profile?saved=1")
}

// ChangePassword rotates the credential and ends the session; the stored
// cookie still carries the old token, so a fresh login is required.
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	identity, _ := CurrentIdentity(c)

	err := h.api.WithToken(identity.Token).ChangePassword(dto.ChangePasswordRequest{
		Username:    identity.Username,
		OldPassword: c.FormValue("old_password"),
		NewPassword: c.FormValue("new_password"),
	})
	if err != nil {
		if apiErr, ok := err.(*apiclient.Error); ok && apiErr.Status < http.StatusInternalServerError {
			user, lookupErr := h.api.WithToken(identity.Token).UserByEmail(identity.Email)
			if lookupErr != nil {
				return lookupErr
			}
			return render(c, "profile", fiber.Map{
				"Error":   apiErr.Message,
				"Profile": NewProfileVM(user),
			})
		}
		return err
	}

	h.sessions.SignOut(c)
	return c.Redirect("/account/login?reason=passwordchanged")
}
