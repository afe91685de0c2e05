package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"evently/internal/events/service"
	"evently/pkg/auth"
	httputil "evently/pkg/http"
	"evently/pkg/logger"
	"evently/pkg/model"
)

type EventHandler struct {
	service service.EventService
	log     *logger.Logger
}

func NewEventHandler(service service.EventService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log,
	}
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	events, err := h.service.GetAll(r.Context())
	if err != nil {
		h.log.Error("Failed to list events", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, events)
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	event, err := h.service.Create(r.Context(), identity, &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	identity, _ := auth.IdentityFromContext(r.Context())
	event, err := h.service.Update(r.Context(), identity, ps.ByName("id"), &input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())
	if err := h.service.Delete(r.Context(), identity, ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, "Event deleted successfully")
}

func (h *EventHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/events", h.GetAll)
	router.POST("/api/v1/events", h.Create)
	router.GET("/api/v1/events/:id", h.GetByID)
	router.PUT("/api/v1/events/:id", h.Update)
	router.DELETE("/api/v1/events/:id", h.Delete)
}
