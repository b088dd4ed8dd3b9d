package handler

import (
	"net/http"

	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
