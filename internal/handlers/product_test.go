package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
	"github.com/example/ecommerce/internal/utils"
)

func TestProductCreateAndGet(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	norway := seedCountry(t, db, "Norway")
	sweden := seedCountry(t, db, "Sweden")

	resp := doJSON(t, app, http.MethodPost, "/api/product", dto.Product{
		Name:        "Go in Action",
		Description: "Hands-on introduction",
		Price:       39.5,
		CategoryID:  category.ID,
		CountryIDs:  []uuid.UUID{norway.ID, sweden.ID},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.Product
	decodeJSON(t, resp, &created)
	assert.ElementsMatch(t, []uuid.UUID{norway.ID, sweden.ID}, created.CountryIDs)
	assert.Equal(t, "Books", created.CategoryName)

	resp = doJSON(t, app, http.MethodGet, "/api/product/"+created.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.Product
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.ElementsMatch(t, []string{"Norway", "Sweden"}, fetched.CountryNames)
}

func TestProductSearchPagination(t *testing.T) {
	app, db, _ := setupApp(t)

	books := seedCategory(t, db, "Books")
	games := seedCategory(t, db, "Games")
	seedProduct(t, db, "Go in Action", books)
	seedProduct(t, db, "Go Web Programming", books)
	seedProduct(t, db, "The Go Programming Language", books)
	seedProduct(t, db, "Chess Set", games)

	resp := doJSON(t, app, http.MethodGet,
		"/api/product/search?name=go&page=1&pageSize=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get(utils.TotalCountHeader))

	var page1 []dto.Product
	decodeJSON(t, resp, &page1)
	assert.Len(t, page1, 2)

	resp = doJSON(t, app, http.MethodGet,
		"/api/product/search?name=go&page=2&pageSize=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page2 []dto.Product
	decodeJSON(t, resp, &page2)
	assert.Len(t, page2, 1)

	resp = doJSON(t, app, http.MethodGet,
		"/api/product/search?categoryId="+games.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get(utils.TotalCountHeader))
	var filtered []dto.Product
	decodeJSON(t, resp, &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Chess Set", filtered[0].Name)
}

func TestProductUpdateReplacesCountries(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	norway := seedCountry(t, db, "Norway")
	sweden := seedCountry(t, db, "Sweden")
	product := seedProduct(t, db, "Go in Action", category, norway)

	resp := doJSON(t, app, http.MethodPut, "/api/product/"+product.ID.String(), dto.Product{
		Name:       "Go in Action, 2nd ed.",
		Price:      45,
		CategoryID: category.ID,
		CountryIDs: []uuid.UUID{sweden.ID},
	}, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var updated models.Product
	require.NoError(t, db.Preload("Countries").First(&updated, "id = ?", product.ID).Error)
	assert.Equal(t, "Go in Action, 2nd ed.", updated.Name)
	require.Len(t, updated.Countries, 1)
	assert.Equal(t, sweden.ID, updated.Countries[0].ID)
}

func TestProductCreateInvalidCategory(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/product", dto.Product{
		Name:       "Orphan",
		CategoryID: uuid.New(),
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductDeleteSoftWhenOrdered(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	product := seedProduct(t, db, "Go in Action", category)
	user := seedAdmin(t, db, "buyer", "pw123")

	order := models.Order{
		ProductID:     product.ID,
		UserID:        user.ID,
		OrderedAt:     time.Now().UTC(),
		PaymentMethod: "card",
	}
	require.NoError(t, db.Create(&order).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/product/"+product.ID.String(), nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.True(t, stored.IsDeleted)

	// Soft-deleted products disappear from listings.
	resp = doJSON(t, app, http.MethodGet, "/api/product", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.Product
	decodeJSON(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestProductDeleteHardWhenUnordered(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	country := seedCountry(t, db, "Norway")
	product := seedProduct(t, db, "Go in Action", category, country)

	resp := doJSON(t, app, http.MethodDelete, "/api/product/"+product.ID.String(), nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var joinRows int64
	require.NoError(t, db.Table("product_countries").Count(&joinRows).Error)
	assert.EqualValues(t, 0, joinRows, "join rows must be removed with the product")
}

func TestProductListExcludesImagePayload(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	product := seedProduct(t, db, "Go in Action", category)

	image := models.ProductImage{
		ProductID: product.ID,
		MimeType:  "image/png",
		Data:      []byte{0x89, 0x50, 0x4e, 0x47},
	}
	require.NoError(t, db.Create(&image).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/product", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []dto.Product
	decodeJSON(t, resp, &listed)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].ImageIDs, 1)
	assert.Equal(t, image.ID, listed[0].ImageIDs[0])
	assert.Equal(t, category.Name, listed[0].CategoryName)
}
