package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/ecommerce/internal/auth"
	"github.com/example/ecommerce/internal/config"
	"github.com/example/ecommerce/internal/database"
	"github.com/example/ecommerce/internal/dto"
	"github.com/example/ecommerce/internal/handlers"
	"github.com/example/ecommerce/internal/models"
	"github.com/example/ecommerce/internal/routes"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTIssuer:     "ecommerce-api",
		JWTAudience:   "ecommerce-clients",
		TokenExpires:  time.Hour,
		SessionSecret: "test-session-secret",
		SessionIdle:   30 * time.Minute,
		SessionCookie: ".Session",
	}
}

func testTokens(cfg *config.Config) auth.TokenConfig {
	return auth.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.TokenExpires,
	}
}

// setupApp builds the full API on a unique in-memory database per test.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := testConfig()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(db)})
	routes.Register(app, db, cfg)

	return app, db, cfg
}

func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	req := newRequest(t, method, path, body)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func registerUser(t *testing.T, app *fiber.App, username, password, email string) dto.User {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
		Name:     username,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user dto.User
	decodeJSON(t, resp, &user)
	return user
}

func loginUser(t *testing.T, app *fiber.App, username, password string) dto.AuthenticatedUser {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var authUser dto.AuthenticatedUser
	decodeJSON(t, resp, &authUser)
	return authUser
}

// seedAdmin creates an admin account directly; registration always assigns
// the plain user role.
func seedAdmin(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	admin := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: auth.HashPassword(password),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func seedCountry(t *testing.T, db *gorm.DB, name string) *models.Country {
	t.Helper()
	country := models.Country{Name: name}
	require.NoError(t, db.Create(&country).Error)
	return &country
}

func seedProduct(t *testing.T, db *gorm.DB, name string, category *models.Category, countries ...*models.Country) *models.Product {
	t.Helper()

	product := models.Product{
		Name:       name,
		Price:      9.99,
		CategoryID: category.ID,
	}
	for _, country := range countries {
		product.Countries = append(product.Countries, *country)
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
