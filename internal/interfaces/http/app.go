package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

// NewApp crea la app Fiber con el ErrorHandler, recover y el log de peticiones.
// Immutable: los valores de c.Params/c.Query sobreviven a la petición; los repositorios
// en memoria guardan ids de ruta tal cual.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}
