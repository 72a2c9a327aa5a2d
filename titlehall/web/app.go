package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/services"
)

// App is the HTTP surface. It translates requests into session
// operations and domain errors into status codes; all game rules live
// below it.
type App struct {
	fiber    *fiber.App
	session  *services.SessionManager
	chat     *services.ChatFeed
	catalog  *catalog.Catalog
	recorder *services.Recorder
}

func NewApp(session *services.SessionManager, chat *services.ChatFeed, cat *catalog.Catalog, recorder *services.Recorder) *App {
	app := &App{
		session:  session,
		chat:     chat,
		catalog:  cat,
		recorder: recorder,
	}

	app.fiber = fiber.New(fiber.Config{
		AppName:               "titlehall",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				fiberErr = e
			}
			if fiberErr != nil {
				return SendError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, nil)
			}
			return SendError(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error", nil)
		},
	})

	app.fiber.Use(recover.New())
	app.fiber.Use(cors.New())
	app.fiber.Use(LoggingMiddleware())

	app.routes()
	return app
}

func (a *App) routes() {
	a.fiber.Get("/health", a.handleHealth)

	api := a.fiber.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", a.handleRegister)
	auth.Post("/login", a.handleLogin)
	auth.Post("/logout", a.handleLogout)

	api.Get("/account", a.handleAccount)

	cat := api.Group("/catalog")
	cat.Get("/unlocks", a.handleUnlocks)
	cat.Get("/objectives", a.handleObjectives)

	shop := api.Group("/shop")
	shop.Post("/purchase", a.handlePurchase)
	shop.Post("/activate", a.handleActivate)
	shop.Post("/copy", a.handleCopyTitle)

	chat := api.Group("/chat")
	chat.Post("/messages", a.handleSendMessage)
	chat.Get("/messages", a.handleMessages)

	api.Post("/admin/credit", a.handleAdminCredit)
	api.Get("/notifications", a.handleNotifications)
}

// Listen blocks serving HTTP until Shutdown is called.
func (a *App) Listen(addr string) error {
	slog.Info("HTTP server listening",
		slog.String("type", "web"),
		slog.String("addr", addr))
	return a.fiber.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.fiber.ShutdownWithContext(ctx)
}

// Test runs a request through the app without a network listener.
func (a *App) Test(req *http.Request, msTimeout ...int) (*http.Response, error) {
	return a.fiber.Test(req, msTimeout...)
}
