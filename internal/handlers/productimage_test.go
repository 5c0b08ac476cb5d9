package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ecommerce/internal/dto"
)

var pngStub = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func uploadImage(t *testing.T, app *fiber.App, productID string, data []byte, mimeType string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="product.png"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/productimages/upload/"+productID, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestImageUploadDownloadDelete(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	product := seedProduct(t, db, "Go in Action", category)

	resp := uploadImage(t, app, product.ID.String(), pngStub, "image/png")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded dto.ProductImage
	decodeJSON(t, resp, &uploaded)
	assert.Equal(t, "image/png", uploaded.MimeType)
	assert.Equal(t, "/api/productimages/"+uploaded.ID.String(), uploaded.URL)

	resp = doJSON(t, app, http.MethodGet, uploaded.URL, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, pngStub, body)

	resp = doJSON(t, app, http.MethodDelete, uploaded.URL, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, uploaded.URL, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImageUploadUnknownProduct(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := uploadImage(t, app, "00000000-0000-0000-0000-000000000000", pngStub, "image/png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImageUploadEmptyFile(t *testing.T) {
	app, db, _ := setupApp(t)

	category := seedCategory(t, db, "Books")
	product := seedProduct(t, db, "Go in Action", category)

	resp := uploadImage(t, app, product.ID.String(), nil, "image/png")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
