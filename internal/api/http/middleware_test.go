package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Handlers pass c.UserContext() to services, so the deadline set here must be
// visible on that context or the timeout never reaches DB and mail calls.
func TestRequestTimeoutDeadlineReachesHandlers(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(5 * time.Second))

	var deadline time.Time
	var hasDeadline bool
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, hasDeadline = c.UserContext().Deadline()
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}
