package middleware_test

import (
	"net/http/httptest"
	"testing"

	"rom-curator/core/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Auth("secret"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	t.Run("Missing Key", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(middleware.APIKeyHeader, "wrong")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Valid Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(middleware.APIKeyHeader, "secret")
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRayID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RayID())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = c.Locals("ray_id").(string)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, resp.Header.Get(middleware.RayIDHeader))
}

func TestRayIDPreservesIncomingID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RayID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RayIDHeader, "upstream-id")
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, "upstream-id", resp.Header.Get(middleware.RayIDHeader))
}
