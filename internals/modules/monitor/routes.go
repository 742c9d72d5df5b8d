package monitor

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateURL)
	r.Get("/", h.GetAllURLs)
	r.Post("/import-csv", h.ImportCSV)
	r.Post("/check-all", h.CheckAllNow)
	r.Get("/{urlID}", h.GetURL)
	r.Put("/{urlID}", h.UpdateURL)
	r.Delete("/{urlID}", h.DeleteURL)
	r.Post("/{urlID}/check", h.CheckNow)
	r.Get("/{urlID}/history", h.History)

	return r
}
