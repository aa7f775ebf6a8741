package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/gestion-pro/internal/interfaces/http"
)

// stubChecker responde siempre lo configurado.
type stubChecker struct {
	enabled bool
	err     error
}

func (s stubChecker) CheckFeature(_ context.Context, _, _ string) (bool, error) {
	return s.enabled, s.err
}

func buildFeatureApp(checker stubChecker) *fiber.App {
	app := fiber.New()
	app.Get("/gated",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireFeature("online_payments", checker),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func doFeatureRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireFeature_Habilitada_Pasa(t *testing.T) {
	app := buildFeatureApp(stubChecker{enabled: true})
	resp := doFeatureRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireFeature_Deshabilitada_Retorna403(t *testing.T) {
	app := buildFeatureApp(stubChecker{enabled: false})
	resp := doFeatureRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FEATURE_DISABLED")
}

func TestRequireFeature_ErrorDeInfra_Retorna503(t *testing.T) {
	app := buildFeatureApp(stubChecker{err: errors.New("db caída")})
	resp := doFeatureRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"un fallo al resolver la matriz no debe responder 403 ni 500 genérico")
}

func TestRequireFeature_SinToken_Retorna401(t *testing.T) {
	app := buildFeatureApp(stubChecker{enabled: true})
	resp := doFeatureRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
