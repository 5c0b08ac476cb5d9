package webapp

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/apiclient"
	"github.com/example/ecommerce/internal/dto"
)

const browsePageSize = 9

// ProductsHandler owns the storefront browse pages and the admin product
// management pages.
type ProductsHandler struct {
	api *apiclient.Client
}

func NewProductsHandler(api *apiclient.Client) *ProductsHandler {
	return &ProductsHandler{api: api}
}

func (h *ProductsHandler) listPage(c *fiber.Ctx, template string, pageSize int) error {
	client := h.api.WithToken(bearerToken(c))

	search := c.Query("name")
	categoryID := c.Query("categoryId")
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	products, total, err := client.SearchProducts(search, categoryID, page, pageSize)
	if err != nil {
		return err
	}

	categories, err := client.Categories()
	if err != nil {
		return err
	}

	vm := NewProductListVM(products, total, page, pageSize)
	vm.Categories = NewCategoryVMs(categories)
	vm.Search = search
	vm.CategoryID = categoryID

	return render(c, template, fiber.Map{"List": vm})
}

// Index is the storefront browse page with search and pagination.
func (h *ProductsHandler) Index(c *fiber.Ctx) error {
	return h.listPage(c, "products/index", browsePageSize)
}

// Image proxies product image bytes from the API so the browser only ever
// talks to the front end.
func (h *ProductsHandler) Image(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid image id")
	}

	data, mimeType, err := h.api.ProductImage(id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}

func (h *ProductsHandler) AdminIndex(c *fiber.Ctx) error {
	return h.listPage(c, "products/manage", browsePageSize)
}

func (h *ProductsHandler) NewForm(c *fiber.Ctx) error {
	return h.renderForm(c, ProductVM{}, "")
}

func (h *ProductsHandler) EditForm(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.api.WithToken(bearerToken(c)).Product(id)
	if err != nil {
		return err
	}

	return h.renderForm(c, NewProductVM(product), "")
}

func (h *ProductsHandler) renderForm(c *fiber.Ctx, product ProductVM, errorMessage string) error {
	client := h.api.WithToken(bearerToken(c))

	categories, err := client.Categories()
	if err != nil {
		return err
	}
	countries, err := client.Countries()
	if err != nil {
		return err
	}

	data := fiber.Map{
		"Product":    product,
		"Categories": NewCategoryVMs(categories),
		"Countries":  NewCountryVMs(countries),
	}
	if errorMessage != "" {
		data["Error"] = errorMessage
	}
	return render(c, "products/form", data)
}

// parseProductForm reads the multipart product form. The optional image file
// is returned separately because it travels through a different endpoint.
func (h *ProductsHandler) parseProductForm(c *fiber.Ctx) (dto.Product, *multipart.FileHeader, error) {
	var product dto.Product

	product.Name = c.FormValue("name")
	product.Description = c.FormValue("description")

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return product, nil, fiber.NewError(fiber.StatusBadRequest, "price must be a non-negative number")
	}
	product.Price = price

	categoryID, err := uuid.Parse(c.FormValue("category_id"))
	if err != nil {
		return product, nil, fiber.NewError(fiber.StatusBadRequest, "choose a category")
	}
	product.CategoryID = categoryID

	if form, err := c.MultipartForm(); err == nil {
		for _, raw := range form.Value["country_ids"] {
			id, err := uuid.Parse(raw)
			if err != nil {
				return product, nil, fiber.NewError(fiber.StatusBadRequest, "invalid country selection")
			}
			product.CountryIDs = append(product.CountryIDs, id)
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	return product, file, nil
}

func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	client := h.api.WithToken(bearerToken(c))

	product, file, err := h.parseProductForm(c)
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return h.renderForm(c, productFormEcho(product), fiberErr.Message)
		}
		return err
	}

	created, err := client.CreateProduct(product)
	if err != nil {
		if apiErr, ok := err.(*apiclient.Error); ok && apiErr.Status < http.StatusInternalServerError {
			return h.renderForm(c, productFormEcho(product), apiErr.Message)
		}
		return err
	}

	if file != nil {
		if err := h.uploadImage(client, created.ID, file); err != nil {
			return err
		}
	}

	return c.Redirect("/admin/products")
}

func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	client := h.api.WithToken(bearerToken(c))

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	product, file, err := h.parseProductForm(c)
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			vm := productFormEcho(product)
			vm.ID = id.String()
			return h.renderForm(c, vm, fiberErr.Message)
		}
		return err
	}

	if err := client.UpdateProduct(id, product); err != nil {
		if apiErr, ok := err.(*apiclient.Error); ok && apiErr.Status < http.StatusInternalServerError {
			vm := productFormEcho(product)
			vm.ID = id.String()
			return h.renderForm(c, vm, apiErr.Message)
		}
		return err
	}

	if file != nil {
		if err := h.uploadImage(client, id, file); err != nil {
			return err
		}
	}

	return c.Redirect("/admin/products")
}

func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.api.WithToken(bearerToken(c)).DeleteProduct(id); err != nil {
		return err
	}

	return c.Redirect("/admin/products")
}

func (h *ProductsHandler) uploadImage(client *apiclient.Client, productID uuid.UUID, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	mimeType := file.Header.Get(fiber.HeaderContentType)
	_, err = client.UploadProductImage(productID, file.Filename, mimeType, data)
	return err
}

// productFormEcho rebuilds the form view model from a rejected submission so
// the visitor's input survives the round trip.
func productFormEcho(p dto.Product) ProductVM {
	vm := ProductVM{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
	if p.CategoryID != uuid.Nil {
		vm.CategoryID = p.CategoryID.String()
	}
	for _, id := range p.CountryIDs {
		vm.CountryIDs = append(vm.CountryIDs, id.String())
	}
	return vm
}
