package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentpilot/internal/seasonrules/service"
	apperrors "rentpilot/pkg/errors"
	httputil "rentpilot/pkg/http"
	"rentpilot/pkg/logger"
	"rentpilot/pkg/middleware"
	"rentpilot/pkg/model"
)

type SeasonRuleHandler struct {
	service service.SeasonRuleService
	log     *logger.Logger
}

func NewSeasonRuleHandler(service service.SeasonRuleService, log *logger.Logger) *SeasonRuleHandler {
	return &SeasonRuleHandler{
		service: service,
		log:     log,
	}
}

func (h *SeasonRuleHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	rules, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteList(w, rules, len(rules)); err != nil {
		h.log.Error("failed to write list response", "handler", "List", "operation", "WriteList", "error", err)
	}
}

func (h *SeasonRuleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var input model.SeasonRuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Code:  apperrors.CodeInvalidInput,
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	rule, err := h.service.Add(r.Context(), tenantID, &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, rule); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SeasonRuleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenantID, err := middleware.RequireTenant(r.Context())
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Remove(r.Context(), tenantID, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SeasonRuleHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SeasonRuleHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/season-rules", h.List)
	router.POST("/api/v1/season-rules", h.Create)
	router.DELETE("/api/v1/season-rules/:id", h.Delete)
}
