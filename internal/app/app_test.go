package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radarcli/internal/config"
	"radarcli/internal/infrastructure"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()

	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = false

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	require.NoError(t, err)

	app := &Application{Config: cfg, Logger: logger}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app
}

func TestApplicationRouting(t *testing.T) {
	app := newTestApplication(t)

	t.Run("healthz responds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("instruments without session conflicts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/instruments", nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateServer(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.NotNil(t, app.Server.Handler)
}
