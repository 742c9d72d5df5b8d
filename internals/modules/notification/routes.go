package notification

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/recipients", h.CreateRecipient)
	r.Get("/recipients", h.GetAllRecipients)
	r.Put("/recipients/{recipientID}", h.UpdateRecipient)
	r.Delete("/recipients/{recipientID}", h.DeleteRecipient)

	r.Post("/test", h.SendTest)

	return r
}
