package routes

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	auth      *handler.AuthHandler
	match     *handler.MatchHandler
	candidate *handler.CandidateHandler
	wsHandler *ws.Handler
	authMW    *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	match *handler.MatchHandler,
	candidate *handler.CandidateHandler,
	wsHandler *ws.Handler,
	authMW *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:    health,
		auth:      auth,
		match:     match,
		candidate: candidate,
		wsHandler: wsHandler,
		authMW:    authMW,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.auth.RegisterRoutes(v1.Group("/auth"))

	protected := v1.Group("", r.authMW.Middleware())
	r.match.RegisterRoutes(protected)
	r.candidate.RegisterRoutes(protected)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.wsHandler == nil {
		return
	}
	app.Get("/ws/matches", r.wsHandler.HandleMatchesWS)
}
