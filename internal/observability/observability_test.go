package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SBShweta/blood-donation-app/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.AppConfig{}, config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.Empty(t, logger.Name())
}

func TestNewLoggerNamedAfterApp(t *testing.T) {
	app := config.AppConfig{Name: "blood-donation-api", Env: "production", Version: "1.0.0"}
	logger, err := NewLogger(app, config.LoggerConfig{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "blood-donation-api", logger.Name())
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/users", http.MethodGet, 200, 10*time.Millisecond)
	m.RecordRequest("/api/users", http.MethodGet, 200, 30*time.Millisecond)
	m.RecordError("/api/users", http.MethodGet, "FORBIDDEN")

	stats := m.Requests()["/api/users|GET|200"]
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 20*time.Millisecond, stats.MeanLatency)
	assert.Equal(t, int64(1), m.Errors()["/api/users|GET|FORBIDDEN"])

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordRequest("/", "GET", 200, 0) })
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString(c.Params("id")) })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	for _, path := range []string{"/items/1", "/items/2", "/teapot", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	requests := metrics.Requests()
	assert.Equal(t, int64(2), requests["/items/:id|GET|200"].Count)
	assert.Equal(t, int64(1), requests["/teapot|GET|418"].Count)
	assert.Equal(t, int64(1), requests["/boom|GET|500"].Count)

	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, 1, logs.FilterField(zap.Int("status", 500)).Len())
	assert.Equal(t, 2, logs.FilterMessage("request completed").FilterField(zap.Int("status", 200)).Len())
}
