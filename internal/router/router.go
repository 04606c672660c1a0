package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authGate func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public routes
	r.POST("/users", handlers.Auth.Register)
	r.POST("/users/login", handlers.Auth.Login)

	// Protected user routes
	r.POST("/users/logout", authGate(handlers.Auth.Logout))
	r.POST("/users/logoutAll", authGate(handlers.Auth.LogoutAll))
	r.GET("/users/me", authGate(handlers.Profile.Me))
	r.PATCH("/users/me", authGate(handlers.Profile.UpdateMe))
	r.DELETE("/users/me", authGate(handlers.Profile.DeleteMe))

	// Protected task routes
	r.POST("/tasks", authGate(handlers.Task.Create))
	r.GET("/tasks", authGate(handlers.Task.List))
	r.GET("/tasks/{id}", authGate(handlers.Task.Get))
	r.PATCH("/tasks/{id}", authGate(handlers.Task.Update))
	r.DELETE("/tasks/{id}", authGate(handlers.Task.Delete))

	return r
}
