package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omegapos/omega-sync-api/internal/application/auth"
	appsync "github.com/omegapos/omega-sync-api/internal/application/sync"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SyncUC    *appsync.SyncUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
// Las rutas siguen el contrato del cliente ERP existente (clear/sync/v2 y
// app1/login/); clear y sync exigen Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the OMEGA Sync API 🚀")
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Get("/app1/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to App1 API",
			"version": "1.0",
			"status":  "active",
			"endpoints": fiber.Map{
				"home":  "/app1/",
				"login": "/app1/login/",
			},
		})
	})
	app.Post("/app1/login/", authHandler.Login)

	// Sincronización (protegido)
	syncHandler := NewSyncHandler(deps.SyncUC)
	protected := AuthMiddleware(deps.JWTSecret)
	app.Delete("/clear/:entity", protected, syncHandler.Clear)
	app.Post("/sync/:entity/chunk", protected, syncHandler.ChunkInsert)
	app.Post("/sync/:entity/v2", protected, syncHandler.Replace)
}
