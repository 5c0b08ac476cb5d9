package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/models"
)

func TestCategoryCRUD(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/category", dto.Category{Name: "Books"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.Category
	decodeJSON(t, resp, &created)
	assert.Equal(t, "Books", created.Name)

	resp = doJSON(t, app, http.MethodGet, "/api/category/"+created.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/category/"+created.ID.String(),
		dto.Category{Name: "Ebooks"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.Category
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Ebooks", updated.Name)

	resp = doJSON(t, app, http.MethodGet, "/api/category", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.Category
	decodeJSON(t, resp, &list)
	assert.Len(t, list, 1)

	resp = doJSON(t, app, http.MethodDelete, "/api/category/"+created.ID.String(), nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/category/"+created.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteReferencedCategoryConflict(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	product := seedProduct(t, db, "Go in Action", category)

	resp := doJSON(t, app, http.MethodDelete, "/api/category/"+category.ID.String(), nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Neither side changed.
	var storedCategory models.Category
	require.NoError(t, db.First(&storedCategory, "id = ?", category.ID).Error)
	var storedProduct models.Product
	require.NoError(t, db.First(&storedProduct, "id = ?", product.ID).Error)
	assert.Equal(t, category.ID, storedProduct.CategoryID)
}

func TestDeleteReferencedCountryConflict(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	country := seedCountry(t, db, "Norway")
	seedProduct(t, db, "Salmon Cookbook", category, country)

	resp := doJSON(t, app, http.MethodDelete, "/api/countries/"+country.ID.String(), nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var storedCountry models.Country
	require.NoError(t, db.First(&storedCountry, "id = ?", country.ID).Error)

	var joinRows int64
	require.NoError(t, db.Table("product_countries").
		Where("country_id = ?", country.ID).Count(&joinRows).Error)
	assert.EqualValues(t, 1, joinRows)
}

func TestDeleteUnreferencedCountry(t *testing.T) {
	app, db, _ := setupApp(t)

	country := seedCountry(t, db, "Iceland")
	resp := doJSON(t, app, http.MethodDelete, "/api/countries/"+country.ID.String(), nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCatalogValidation(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/category", dto.Category{Name: ""}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/category/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
