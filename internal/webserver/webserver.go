package webserver

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// New builds the Fiber application and sets up the required routes.
func New(cfg Config, controllers Controllers) *fiber.App {
	engine := html.NewFileSystem(http.FS(viewsFS), ".html")

	app := fiber.New(fiber.Config{
		Views:             engine,
		AppName:           "ClubHub",
		PassLocalsToViews: true,
		ErrorHandler:      controllers.ErrorHandler,
	})

	routes(app, cfg, controllers)

	return app
}
