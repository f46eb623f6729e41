package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/workforce-scheduler/internal/application"
)

type estimateService interface {
	Estimate(params application.EstimateParams) (application.EstimateResult, error)
}

type EstimateHandler struct {
	service   estimateService
	responder responder
}

func NewEstimateHandler(service estimateService, logger *slog.Logger) *EstimateHandler {
	return &EstimateHandler{service: service, responder: newResponder(logger)}
}

func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.Estimate(application.EstimateParams{
		PackageCount: req.PackageCount,
		TeamSize:     req.TeamSize,
		PaletteGood:  req.PaletteGood,
		StartTime:    strings.TrimSpace(req.StartTime),
		Quick:        strings.EqualFold(strings.TrimSpace(req.Mode), "quick"),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEstimateDTO(result))
}

type estimateRequest struct {
	PackageCount int    `json:"package_count"`
	TeamSize     int    `json:"team_size"`
	PaletteGood  bool   `json:"palette_good"`
	StartTime    string `json:"start_time"`
	Mode         string `json:"mode"`
}

type estimateDTO struct {
	TotalSeconds    int    `json:"total_seconds"`
	Hours           int    `json:"hours"`
	Minutes         int    `json:"minutes"`
	Seconds         int    `json:"seconds"`
	RequiredMinutes int    `json:"required_minutes"`
	EndTime         string `json:"end_time,omitempty"`
}

func toEstimateDTO(result application.EstimateResult) estimateDTO {
	return estimateDTO{
		TotalSeconds:    result.TotalSeconds,
		Hours:           result.Hours,
		Minutes:         result.Minutes,
		Seconds:         result.Seconds,
		RequiredMinutes: result.RequiredMinutes,
		EndTime:         result.EndTime,
	}
}
