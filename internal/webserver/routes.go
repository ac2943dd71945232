package webserver

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

func routes(app *fiber.App, cfg Config, controllers Controllers) {
	app.Use("/css", filesystem.New(filesystem.Config{
		Root: http.FS(cssFS),
	}))

	app.Use(SetFQDN(cfg))
	app.Use(LoadFlash)

	app.Get("/login", controllers.Auth.Login)
	app.Get("/auth/callback", controllers.Auth.Callback)
	app.Get("/logout", controllers.Auth.SignOut)

	app.Get("/join", controllers.Payments.Join)
	app.Get("/items", controllers.Payments.Items)
	app.Post("/pay", controllers.Payments.Pay)
	app.Post("/webhook/square", controllers.Payments.Webhook)
	app.Post("/renew-membership", controllers.RequireSession, controllers.Payments.Renew)

	app.Get("/blob-events", controllers.RequireSession, controllers.Events.Upcoming)
	app.Get("/list_old_events", controllers.RequireSession, controllers.Events.Past)
	app.Get("/fb-events", controllers.RequireSession, controllers.Events.Facebook)
	app.Get("/create_event", controllers.RequireSession, controllers.Events.Create)
	app.Post("/create_event", controllers.RequireSession, controllers.Events.Create)
	app.Post("/delete_event/:id", controllers.RequireSession, controllers.Events.Delete)
	app.Get("/sync-public-events", controllers.RequireSession, controllers.Events.Sync)
	app.Get("/facebook/callback", controllers.RequireSession, controllers.Events.FacebookCallback)

	app.Post("/invite_family", controllers.RequireSession, controllers.Invitations.Invite)
	app.Get("/family-members", controllers.RequireSession, controllers.Invitations.FamilyMembers)

	// Mail scanners probe invitation links with HEAD requests. Answering
	// them with an empty 200 keeps the token alive for the real visitor.
	app.Head("/accept_invitation", controllers.Invitations.AcceptProbe)
	app.Get("/accept_invitation", controllers.Invitations.Accept)
	app.Post("/accept_invitation", controllers.Invitations.Accept)

	app.Get("/privacy", controllers.Home.Privacy)
	app.Get("/delete-data", controllers.Invitations.DeleteData)
	app.Post("/delete-data", controllers.Invitations.DeleteData)

	app.Get("/", controllers.OptionalSession, controllers.Home.Index)
	app.Post("/", controllers.Home.Welcome)
}
