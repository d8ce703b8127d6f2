package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/zhanikpanik/restaurant-checklist-sub002/internal/interfaces/http"
)

// Sin swagger.json el servidor debe arrancar igual: la UI simplemente no se
// monta y el resto de rutas sigue sirviendo.
func TestRegisterSwagger_ArchivoAusenteNoImpideArrancar(t *testing.T) {
	app := fiber.New()
	mounted := apphttp.RegisterSwagger(app, filepath.Join(t.TempDir(), "no-existe.json"), "API")
	assert.False(t, mounted)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterSwagger_ArchivoPresenteMontaLaUI(t *testing.T) {
	spec := filepath.Join(t.TempDir(), "swagger.json")
	doc := `{"swagger":"2.0","info":{"title":"API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(spec, []byte(doc), 0o600))

	app := fiber.New()
	assert.True(t, apphttp.RegisterSwagger(app, spec, "API"))
}
