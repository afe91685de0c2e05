package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"evently/internal/dashboard/service"
	httputil "evently/pkg/http"
	"evently/pkg/logger"
)

// DashboardHandler serves the admin overview. The request gate already
// requires an admin session for everything under /api/v1/dashboard.
type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, stats)
}

func (h *DashboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dashboard/stats", h.Stats)
}
