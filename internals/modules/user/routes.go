package user

import (
	middle "urlmonitor/internals/middleware"

	"github.com/go-chi/chi/v5"
)

// AuthRoutes mounts the unauthenticated login endpoint plus the
// token-protected profile lookup.
func AuthRoutes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.LogIn)
	r.With(authMW.Handle).Get("/me", h.Me)

	return r
}

// Routes mounts user management. The caller wraps these with authentication
// and the superadmin role requirement.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateUser)
	r.Get("/", h.GetAllUsers)
	r.Put("/{userID}", h.UpdateUser)
	r.Delete("/{userID}", h.DeleteUser)

	return r
}
