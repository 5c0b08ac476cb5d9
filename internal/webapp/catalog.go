package webapp

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/apiclient"
)

// CatalogHandler owns the admin category and country pages.
type CatalogHandler struct {
	api *apiclient.Client
}

func NewCatalogHandler(api *apiclient.Client) *CatalogHandler {
	return &CatalogHandler{api: api}
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.api.WithToken(bearerToken(c)).Categories()
	if err != nil {
		return err
	}

	data := fiber.Map{"Categories": NewCategoryVMs(categories)}
	if c.Query("error") == "inuse" {
		data["Error"] = "Cannot delete: products still reference this category."
	}
	return render(c, "catalog/categories", data)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Redirect("/admin/categories")
	}

	if _, err := h.api.WithToken(bearerToken(c)).CreateCategory(name); err != nil {
		return err
	}
	return c.Redirect("/admin/categories")
}

// DeleteCategory turns the API's referential-integrity conflict into a page
// message instead of an error screen.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}

	if err := h.api.WithToken(bearerToken(c)).DeleteCategory(id); err != nil {
		if apiclient.IsStatus(err, http.StatusConflict) {
			return c.Redirect("/admin/categories?error=inuse")
		}
		return err
	}
	return c.Redirect("/admin/categories")
}

func (h *CatalogHandler) Countries(c *fiber.Ctx) error {
	countries, err := h.api.WithToken(bearerToken(c)).Countries()
	if err != nil {
		return err
	}

	data := fiber.Map{"Countries": NewCountryVMs(countries)}
	if c.Query("error") == "inuse" {
		data["Error"] = "Cannot delete: products still reference this country."
	}
	return render(c, "catalog/countries", data)
}

func (h *CatalogHandler) CreateCountry(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Redirect("/admin/countries")
	}

	if _, err := h.api.WithToken(bearerToken(c)).CreateCountry(name); err != nil {
		return err
	}
	return c.Redirect("/admin/countries")
}

func (h *CatalogHandler) DeleteCountry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid country id")
	}

	if err := h.api.WithToken(bearerToken(c)).DeleteCountry(id); err != nil {
		if apiclient.IsStatus(err, http.StatusConflict) {
			return c.Redirect("/admin/countries?error=inuse")
		}
		return err
	}
	return c.Redirect("/admin/countries")
}
