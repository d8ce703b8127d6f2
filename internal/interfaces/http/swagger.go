package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// RegisterSwagger monta la UI de swagger en /docs solo si el archivo estático
// existe. El middleware de contrib entra en pánico con un archivo ausente, y
// el servidor debe poder arrancar en entornos donde swagger.json no se genera
// (imágenes mínimas, CI). Devuelve si la UI quedó montada.
func RegisterSwagger(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
