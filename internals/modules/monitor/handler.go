package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckRunner triggers on-demand checks; implemented by the check executor.
type CheckRunner interface {
	CheckNow(ctx context.Context, urlID uuid.UUID) (URLCheck, error)
	CheckAll(ctx context.Context) (int, error)
}

type Handler struct {
	service   *Service
	runner    CheckRunner
	validator *validator.Validate
}

func NewHandler(service *Service, runner CheckRunner, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		runner:    runner,
		validator: validator,
	}
}

func (h *Handler) CreateURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	cmd := CreateURLCmd{
		URL:           req.URL,
		ReferralURL:   req.ReferralURL,
		Name:          req.Name,
		CheckInterval: req.CheckInterval,
		IsActive:      true,
	}
	if req.ProxyID != nil {
		id, err := uuid.Parse(*req.ProxyID)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid proxy id")
			return
		}
		cmd.ProxyID = &id
	}
	if req.IsActive != nil {
		cmd.IsActive = *req.IsActive
	}

	m, err := h.service.CreateURL(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.URLCreated, toURLResponse(m))
}

func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urlID, err := uuid.Parse(chi.URLParam(r, "urlID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid url id")
		return
	}

	m, err := h.service.GetURL(ctx, urlID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", toURLResponse(m))
}

func (h *Handler) GetAllURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urls, err := h.service.GetAllURLs(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make([]URLResponse, 0, len(urls))
	for i := range urls {
		resp = append(resp, toURLResponse(urls[i]))
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) UpdateURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urlID, err := uuid.Parse(chi.URLParam(r, "urlID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid url id")
		return
	}

	var req UpdateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	m, err := h.service.GetURL(ctx, urlID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	if req.URL != nil {
		m.URL = *req.URL
	}
	if req.ReferralURL != nil {
		m.ReferralURL = *req.ReferralURL
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.ProxyID != nil {
		if *req.ProxyID == "" {
			m.ProxyID = nil
		} else {
			id, err := uuid.Parse(*req.ProxyID)
			if err != nil {
				utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid proxy id")
				return
			}
			m.ProxyID = &id
		}
	}
	if req.CheckInterval != nil {
		m.CheckInterval = *req.CheckInterval
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := h.service.UpdateURL(ctx, m); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.URLUpdated, toURLResponse(m))
}

func (h *Handler) DeleteURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urlID, err := uuid.Parse(chi.URLParam(r, "urlID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid url id")
		return
	}

	if err := h.service.DeleteURL(ctx, urlID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.URLDeleted, nil)
}

// CheckNow runs a manual check and returns the outcome with the proxy geo tag.
func (h *Handler) CheckNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urlID, err := uuid.Parse(chi.URLParam(r, "urlID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid url id")
		return
	}

	check, err := h.runner.CheckNow(ctx, urlID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	m, err := h.service.GetURL(ctx, urlID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := CheckResultResponse{
		URLID:        m.ID.String(),
		URL:          m.URL,
		StatusCode:   check.StatusCode,
		ResponseTime: check.ResponseTime,
		Error:        check.ErrorMessage,
		ProxyGeo:     h.service.ProxyGeo(ctx, m),
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) CheckAllNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	checked, err := h.runner.CheckAll(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", CheckAllResponse{
		Message: fmt.Sprintf("Checked %d URLs", checked),
		Checked: checked,
	})
}

// History returns check records newest first; ?limit= defaults to 100.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	urlID, err := uuid.Parse(chi.URLParam(r, "urlID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid url id")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid limit")
			return
		}
		limit = n
	}

	checks, err := h.service.History(ctx, urlID, limit)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make([]CheckResponse, 0, len(checks))
	for i := range checks {
		resp = append(resp, toCheckResponse(checks[i]))
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

const maxCSVSize = 10 << 20 // 10 MiB

func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	if err := r.ParseMultipartForm(maxCSVSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "file must be a CSV")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxCSVSize))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "failed to read file")
		return
	}

	res, err := h.service.ImportCSV(ctx, data)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	errs := res.Errors
	if len(errs) > 10 {
		errs = errs[:10]
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", ImportResponse{
		Message:  fmt.Sprintf("Imported %d URLs, skipped %d", res.Imported, res.Skipped),
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Errors:   errs,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	s, err := h.service.Stats(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "", StatsResponse{
		TotalURLs:    s.TotalURLs,
		ActiveURLs:   s.ActiveURLs,
		URLs200:      s.URLs200,
		URLsError:    s.URLsError,
		TotalProxies: s.TotalProxies,
	})
}
