package app

import (
	"time"
	middle "urlmonitor/internals/middleware"
	"urlmonitor/internals/modules/monitor"
	"urlmonitor/internals/modules/notification"
	"urlmonitor/internals/modules/proxy"
	"urlmonitor/internals/modules/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", user.AuthRoutes(c.userHandler, c.authMW))

		api.Group(func(authed chi.Router) {
			authed.Use(c.authMW.Handle)

			authed.With(c.authMW.RequireRole(user.RoleSuperadmin)).
				Mount("/users", user.Routes(c.userHandler))

			authed.With(c.authMW.RequireRole(user.RoleSuperadmin)).
				Mount("/notifications", notification.Routes(c.notifHandler))

			authed.Mount("/proxies", proxy.Routes(c.proxyHandler))
			authed.Mount("/urls", monitor.Routes(c.monitorHandler))
			authed.Get("/stats", c.monitorHandler.Stats)
		})
	})

	return r
}
