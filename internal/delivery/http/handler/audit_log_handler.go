package handler

import (
	"net/http"
	"strconv"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetByID(r.Context(), auditLogID)
	if err != nil {
		writeError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs narrows to one record's history when both entity and
// entity_id are given.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	entityName := r.URL.Query().Get("entity")
	entityID := r.URL.Query().Get("entity_id")

	var (
		auditLogs *dto.AuditLogListResponse
		err       error
	)
	if entityName != "" && entityID != "" {
		auditLogs, err = h.auditLogUsecase.GetByEntity(r.Context(), entityName, entityID)
	} else {
		auditLogs, err = h.auditLogUsecase.GetAll(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
