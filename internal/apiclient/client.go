// Package apiclient is the front end's typed HTTP client for the API
// service. It attaches the caller's bearer token to every request; when no
// token is present the call proceeds unauthenticated and the API's own
// rejection surfaces the condition.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/utils"
)

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == status
}

// Client calls the API service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New builds a client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client that sends the bearer token.
// An empty token leaves requests unauthenticated.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) do(method, path string, body io.Reader, contentType string, out interface{}) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}

	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp, nil
}

func (c *Client) doJSON(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	resp, err := c.do(method, path, reader, contentType, out)
	if err != nil {
		return err
	}
	if out == nil {
		resp.Body.Close()
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// Login forwards credentials to the API's login endpoint.
func (c *Client) Login(req dto.LoginRequest) (dto.AuthenticatedUser, error) {
	var out dto.AuthenticatedUser
	err := c.doJSON(http.MethodPost, "/api/auth/login", req, &out)
	return out, err
}

// Register creates a new account.
func (c *Client) Register(req dto.RegisterRequest) error {
	return c.doJSON(http.MethodPost, "/api/auth/register", req, nil)
}

// ChangePassword rotates a credential.
func (c *Client) ChangePassword(req dto.ChangePasswordRequest) error {
	return c.doJSON(http.MethodPost, "/api/auth/changepassword", req, nil)
}

// UserByEmail fetches a user profile by email.
func (c *Client) UserByEmail(email string) (dto.User, error) {
	var out dto.User
	err := c.doJSON(http.MethodGet, "/api/users/byemail/"+url.PathEscape(email), nil, &out)
	return out, err
}

// UpdateProfile rewrites the profile behind the email.
func (c *Client) UpdateProfile(email string, req dto.UpdateProfileRequest) error {
	return c.doJSON(http.MethodPut, "/api/users/updateprofile/"+url.PathEscape(email), req, nil)
}

// Categories lists all categories.
func (c *Client) Categories() ([]dto.Category, error) {
	var out []dto.Category
	err := c.doJSON(http.MethodGet, "/api/category", nil, &out)
	return out, err
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(name string) (dto.Category, error) {
	var out dto.Category
	err := c.doJSON(http.MethodPost, "/api/category", dto.Category{Name: name}, &out)
	return out, err
}

// DeleteCategory removes a category; a 409 means products still reference it.
func (c *Client) DeleteCategory(id uuid.UUID) error {
	return c.doJSON(http.MethodDelete, "/api/category/"+id.String(), nil, nil)
}

// Countries lists all countries.
func (c *Client) Countries() ([]dto.Country, error) {
	var out []dto.Country
	err := c.doJSON(http.MethodGet, "/api/countries", nil, &out)
	return out, err
}

// CreateCountry adds a country.
func (c *Client) CreateCountry(name string) (dto.Country, error) {
	var out dto.Country
	err := c.doJSON(http.MethodPost, "/api/countries", dto.Country{Name: name}, &out)
	return out, err
}

// DeleteCountry removes a country; a 409 means products still reference it.
func (c *Client) DeleteCountry(id uuid.UUID) error {
	return c.doJSON(http.MethodDelete, "/api/countries/"+id.String(), nil, nil)
}

// SearchProducts queries the paged product search. The second return value
// is the unpaged total taken from the X-Total-Count header.
func (c *Client) SearchProducts(name, categoryID string, page, pageSize int) ([]dto.Product, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	if name != "" {
		params.Set("name", name)
	}
	if categoryID != "" {
		params.Set("categoryId", categoryID)
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/product/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, 0, decodeError(resp)
	}

	var products []dto.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	total, _ := strconv.Atoi(resp.Header.Get(utils.TotalCountHeader))
	return products, total, nil
}

// Product fetches a single product.
func (c *Client) Product(id uuid.UUID) (dto.Product, error) {
	var out dto.Product
	err := c.doJSON(http.MethodGet, "/api/product/"+id.String(), nil, &out)
	return out, err
}

// CreateProduct adds a product.
func (c *Client) CreateProduct(p dto.Product) (dto.Product, error) {
	var out dto.Product
	err := c.doJSON(http.MethodPost, "/api/product", p, &out)
	return out, err
}

// UpdateProduct rewrites a product.
func (c *Client) UpdateProduct(id uuid.UUID, p dto.Product) error {
	return c.doJSON(http.MethodPut, "/api/product/"+id.String(), p, nil)
}

// DeleteProduct removes (or soft-deletes) a product.
func (c *Client) DeleteProduct(id uuid.UUID) error {
	return c.doJSON(http.MethodDelete, "/api/product/"+id.String(), nil, nil)
}

// UploadProductImage sends a multipart image upload for a product.
func (c *Client) UploadProductImage(productID uuid.UUID, filename, mimeType string, data []byte) (dto.ProductImage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return dto.ProductImage{}, err
	}
	if _, err := part.Write(data); err != nil {
		return dto.ProductImage{}, err
	}
	if err := writer.Close(); err != nil {
		return dto.ProductImage{}, err
	}

	var out dto.ProductImage
	_, err = c.do(http.MethodPost, "/api/productimages/upload/"+productID.String(),
		&buf, writer.FormDataContentType(), &out)
	return out, err
}

// ProductImage downloads raw image bytes and their MIME type.
func (c *Client) ProductImage(id uuid.UUID) ([]byte, string, error) {
	resp, err := c.do(http.MethodGet, "/api/productimages/"+id.String(), nil, "", nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// CreateOrder places an order for the authenticated user.
func (c *Client) CreateOrder(req dto.CreateOrderRequest) (dto.Order, error) {
	var out dto.Order
	err := c.doJSON(http.MethodPost, "/api/order/create", req, &out)
	return out, err
}

// UserOrders lists a user's orders.
func (c *Client) UserOrders(userID uuid.UUID) ([]dto.Order, error) {
	var out []dto.Order
	err := c.doJSON(http.MethodGet, "/api/order/user/"+userID.String(), nil, &out)
	return out, err
}

// UsersWithOrders lists all users with their order history. Admin only.
func (c *Client) UsersWithOrders() ([]dto.UserWithOrders, error) {
	var out []dto.UserWithOrders
	err := c.doJSON(http.MethodGet, "/api/users/with-orders", nil, &out)
	return out, err
}
