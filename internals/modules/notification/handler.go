package notification

import (
	"encoding/json"
	"net/http"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Handler struct {
	repo       *Repository
	dispatcher *Dispatcher
	validator  *validator.Validate
}

func NewHandler(repo *Repository, dispatcher *Dispatcher, validator *validator.Validate) *Handler {
	return &Handler{
		repo:       repo,
		dispatcher: dispatcher,
		validator:  validator,
	}
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	s, err := h.repo.GetOrCreateSettings(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", toSettingsResponse(s))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	s, err := h.repo.GetOrCreateSettings(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	if req.SMTPHost != nil {
		s.SMTPHost = *req.SMTPHost
	}
	if req.SMTPPort != nil {
		s.SMTPPort = *req.SMTPPort
	}
	if req.SMTPUsername != nil {
		s.SMTPUsername = *req.SMTPUsername
	}
	if req.SMTPPassword != nil {
		s.SMTPPassword = *req.SMTPPassword
	}
	if req.SMTPFromEmail != nil {
		s.SMTPFromEmail = *req.SMTPFromEmail
	}
	if req.SMTPUseTLS != nil {
		s.SMTPUseTLS = *req.SMTPUseTLS
	}
	if req.TelegramBotToken != nil {
		s.TelegramBotToken = *req.TelegramBotToken
	}
	if req.NotifyOnError != nil {
		s.NotifyOnError = *req.NotifyOnError
	}
	if req.NotifyOnRecovery != nil {
		s.NotifyOnRecovery = *req.NotifyOnRecovery
	}
	if req.NotifyOnStatusChange != nil {
		s.NotifyOnStatusChange = *req.NotifyOnStatusChange
	}
	if req.NotifyOnEveryCheck != nil {
		s.NotifyOnEveryCheck = *req.NotifyOnEveryCheck
	}

	updated, err := h.repo.UpdateSettings(ctx, s)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.SettingsUpdated, toSettingsResponse(updated))
}

func (h *Handler) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req CreateRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	cmd := CreateRecipientCmd{
		Channel:  req.Channel,
		Address:  req.Address,
		Name:     req.Name,
		IsActive: true,
	}
	if req.IsActive != nil {
		cmd.IsActive = *req.IsActive
	}

	id, err := h.repo.CreateRecipient(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	rec, err := h.repo.GetRecipient(ctx, id)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.RecipientCreated, toRecipientResponse(rec))
}

func (h *Handler) GetAllRecipients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	recipients, err := h.repo.GetAllRecipients(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make([]RecipientResponse, 0, len(recipients))
	for i := range recipients {
		resp = append(resp, toRecipientResponse(recipients[i]))
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	recipientID, err := uuid.Parse(chi.URLParam(r, "recipientID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid recipient id")
		return
	}

	var req UpdateRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	rec, err := h.repo.GetRecipient(ctx, recipientID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	if req.Channel != nil {
		rec.Channel = *req.Channel
	}
	if req.Address != nil {
		rec.Address = *req.Address
	}
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateRecipient(ctx, rec); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.RecipientUpdated, toRecipientResponse(rec))
}

func (h *Handler) DeleteRecipient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	recipientID, err := uuid.Parse(chi.URLParam(r, "recipientID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid recipient id")
		return
	}

	if err := h.repo.DeleteRecipient(ctx, recipientID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.RecipientDeleted, nil)
}

func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req TestNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	if err := h.dispatcher.SendTest(ctx, req.Channel, req.Address); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.TestNotifSent, nil)
}
