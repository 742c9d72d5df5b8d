package proxy

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
	repo      *Repository
	validator *validator.Validate
}

func NewHandler(repo *Repository, validator *validator.Validate) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator,
	}
}

func (h *Handler) CreateProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req CreateProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	cmd := CreateProxyCmd{
		Name:     req.Name,
		Host:     req.Host,
		Port:     req.Port,
		Protocol: req.Protocol,
		Username: req.Username,
		Password: req.Password,
		Geo:      req.Geo,
		IsActive: true,
	}
	if cmd.Protocol == "" {
		cmd.Protocol = ProtocolHTTP
	}
	if req.IsActive != nil {
		cmd.IsActive = *req.IsActive
	}

	id, err := h.repo.Create(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	p, err := h.repo.GetByID(ctx, id)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.ProxyCreated, toProxyResponse(p))
}

func (h *Handler) GetProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	proxyID, err := uuid.Parse(chi.URLParam(r, "proxyID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid proxy id")
		return
	}

	p, err := h.repo.GetByID(ctx, proxyID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", toProxyResponse(p))
}

func (h *Handler) GetAllProxies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	proxies, err := h.repo.GetAll(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make([]ProxyResponse, 0, len(proxies))
	for i := range proxies {
		resp = append(resp, toProxyResponse(proxies[i]))
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) UpdateProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	proxyID, err := uuid.Parse(chi.URLParam(r, "proxyID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid proxy id")
		return
	}

	var req UpdateProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	p, err := h.repo.GetByID(ctx, proxyID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	// patch semantics: only provided fields change
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Host != nil {
		p.Host = *req.Host
	}
	if req.Port != nil {
		p.Port = *req.Port
	}
	if req.Protocol != nil {
		p.Protocol = *req.Protocol
	}
	if req.Username != nil {
		p.Username = *req.Username
	}
	if req.Password != nil {
		p.Password = *req.Password
	}
	if req.Geo != nil {
		p.Geo = *req.Geo
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.repo.Update(ctx, p); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.ProxyUpdated, toProxyResponse(p))
}

func (h *Handler) DeleteProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	proxyID, err := uuid.Parse(chi.URLParam(r, "proxyID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid proxy id")
		return
	}

	if err := h.repo.Delete(ctx, proxyID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.ProxyDeleted, nil)
}
