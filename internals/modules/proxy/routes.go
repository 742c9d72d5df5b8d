package proxy

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateProxy)
	r.Get("/", h.GetAllProxies)
	r.Get("/{proxyID}", h.GetProxy)
	r.Put("/{proxyID}", h.UpdateProxy)
	r.Delete("/{proxyID}", h.DeleteProxy)

	return r
}
