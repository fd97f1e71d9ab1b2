package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentpilot/internal/pricing/service"
	"rentpilot/pkg/calendar"
	apperrors "rentpilot/pkg/errors"
	httputil "rentpilot/pkg/http"
	"rentpilot/pkg/logger"
	"rentpilot/pkg/middleware"
	"rentpilot/pkg/model"
)

type PricingHandler struct {
	service service.PricingService
	log     *logger.Logger
}

func NewPricingHandler(service service.PricingService, log *logger.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log,
	}
}

// Suggestions handles GET /api/v1/pricing/suggestions?date=YYYY-MM-DD.
// Without date, tonight is priced.
func (h *PricingHandler) Suggestions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "Suggestions", err)
		return
	}

	date, err := httputil.ExtractDate(r, "date", calendar.Date{})
	if err != nil {
		h.writeError(w, "Suggestions", err)
		return
	}

	suggestions, err := h.service.Suggestions(r.Context(), tenantID, date)
	if err != nil {
		h.writeError(w, "Suggestions", err)
		return
	}

	if err := httputil.WriteList(w, suggestions, len(suggestions)); err != nil {
		h.log.Error("failed to write list response", "handler", "Suggestions", "operation", "WriteList", "error", err)
	}
}

func (h *PricingHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	month, err := httputil.ExtractMonth(r, "month", calendar.Month{})
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	cal, err := h.service.Calendar(r.Context(), tenantID, r.URL.Query().Get("property_id"), month)
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	if err := httputil.WriteSuccess(w, cal); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PricingHandler) KPIs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "KPIs", err)
		return
	}

	month, err := httputil.ExtractMonth(r, "month", calendar.Month{})
	if err != nil {
		h.writeError(w, "KPIs", err)
		return
	}

	kpis, err := h.service.KPIs(r.Context(), tenantID, month)
	if err != nil {
		h.writeError(w, "KPIs", err)
		return
	}

	if err := httputil.WriteSuccess(w, kpis); err != nil {
		h.log.Error("failed to write success response", "handler", "KPIs", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PricingHandler) Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	var req model.ApplyPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Apply", apperrors.InvalidInput("Invalid request body"))
		return
	}

	event, err := h.service.Apply(r.Context(), tenantID, ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	if err := httputil.WriteSuccess(w, event); err != nil {
		h.log.Error("failed to write success response", "handler", "Apply", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PricingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PricingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/pricing/suggestions", h.Suggestions)
	router.GET("/api/v1/pricing/calendar", h.Calendar)
	router.GET("/api/v1/pricing/kpis", h.KPIs)
	router.POST("/api/v1/pricing/properties/:id/apply", h.Apply)
}
